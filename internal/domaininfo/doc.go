// Package domaininfo carries a small static knowledge base about Home
// Assistant domains: descriptions, common service calls and usage tips.
// It backs the per-domain help endpoint so agents can learn how to act on
// entities they found through search.
package domaininfo
