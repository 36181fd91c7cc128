// Package config loads agentcore settings from YAML files with environment
// variable expansion (${VAR} syntax) and duration parsing. Defaults are safe
// for local development; hosts typically override the model section and the
// shell tool limits.
package config
