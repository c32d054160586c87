package indexer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kailas-cloud/semsearch/internal/domain"
)

// topics seed the synthetic corpus generator.
var topics = []string{
	"machine learning",
	"artificial intelligence",
	"natural language processing",
	"deep learning",
	"data engineering",
	"cloud computing",
	"finance analytics",
	"healthcare systems",
	"e-commerce platforms",
	"cybersecurity",
}

// GenerateDocuments produces n synthetic documents cycling over fixed topics.
// Deterministic: the same n always yields the same corpus.
func GenerateDocuments(n int) []domain.Document {
	docs := make([]domain.Document, n)
	for i := 0; i < n; i++ {
		topic := topics[i%len(topics)]
		docs[i] = domain.Document{
			ID: fmt.Sprintf("doc_%d", i+1),
			Text: fmt.Sprintf(
				"This document discusses concepts related to %s. "+
					"It provides insights and practical examples in %s applications.",
				topic, topic,
			),
		}
	}
	return docs
}

// WriteDocuments persists documents as an indented JSON array, the format the
// document store loads at service start.
func WriteDocuments(path string, docs []domain.Document) error {
	data, err := json.MarshalIndent(docs, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal documents: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write documents file: %w", err)
	}
	return nil
}
