// Package openai implements the ai package interfaces against
// OpenAI-compatible HTTP APIs via langchaingo. It works with the OpenAI
// and Azure OpenAI services as well as local servers (Ollama, LocalAI,
// vLLM) that speak the same protocol.
package openai
