package askalex

import "fmt"

// answerPromptTemplate grounds the model in the assembled context. The
// wording asks for HTML tables because the host UI renders raw HTML, not
// markdown.
const answerPromptTemplate = "You are an intelligent assistant helping users with their questions. " +
	"Use 'you' to refer to the individual asking the questions even if they ask with 'I'. " +
	"Answer the following question using only the data provided in the sources below. " +
	"For tabular information return it as an html table. Do not return markdown format. " +
	"If you cannot answer using the sources below, say you don't know. " +
	"\n\nContext: %s\n\n---\n\nQuestion: %s\nAnswer: "

// keywordPromptTemplate is a one-shot example asking for 2-3 "+"-joined
// search keywords, most important first.
const keywordPromptTemplate = "I would like to search the literature to find answer for the following question. " +
	"Give me 2 to 3 keywords that I should include in my literature search. " +
	`List the most important keyword first and concatenate them by "+". ` +
	`Make them concise, for example: use "ABCC1" instead of "ABCC1 gene". ` +
	"For example, for the question " +
	`"What is the biological rationale for an association between the gene ABCC1 and cardiotoxicity?" ` +
	`The keywords are "ABCC1+cardiotoxicity+biological rationale". ` +
	"\n\nQuestion: %s\nAnswer: "

// buildAnswerPrompt embeds the context block and the question into the
// fixed instruction template.
func buildAnswerPrompt(context, question string) string {
	return fmt.Sprintf(answerPromptTemplate, context, question)
}

// buildKeywordPrompt embeds the question into the keyword-extraction
// template.
func buildKeywordPrompt(question string) string {
	return fmt.Sprintf(keywordPromptTemplate, question)
}
