package generator

import (
	"fmt"
	"strings"
)

const answerPrompt = `You are a helpful customer service assistant for TechGear Electronics.

Your role is to answer customer questions about our products, policies, and services.

IMPORTANT INSTRUCTIONS:
1. Answer ONLY based on the provided context
2. If the context doesn't contain the answer, say "I don't have that information in my knowledge base"
3. Be concise, friendly, and professional
4. Include specific details like prices, features, and policies when available
5. Do NOT make up or infer information not present in the context
6. If asked about products not in the context, politely inform the customer

Context:
%s

Customer Question: %s

Your Response:`

func buildPrompt(query string, snippets []string) string {
	return fmt.Sprintf(answerPrompt, formatContext(snippets), query)
}

func formatContext(snippets []string) string {
	if len(snippets) == 0 {
		return "No relevant information found."
	}
	parts := make([]string, len(snippets))
	for i, s := range snippets {
		parts[i] = fmt.Sprintf("[Source %d]\n%s", i+1, s)
	}
	return strings.Join(parts, "\n\n")
}
