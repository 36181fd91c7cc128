// Package tool implements the function/tool calling subsystem: schema
// validated capabilities with consistent error handling that the reasoning
// loop can execute without ever crashing. Invoke is the always-resolve
// execution wrapper; built-in tools cover shell execution (with a deny-list
// and a hard timeout) and web search.
package tool
