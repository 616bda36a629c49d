// Package openai implements the ai interfaces using OpenAI-compatible APIs
// through langchaingo. It works against any service that speaks the OpenAI
// embedding protocol, including Ollama, LocalAI and vLLM.
package openai
