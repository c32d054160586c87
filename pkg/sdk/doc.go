// Package semsearch provides a Go client for the semsearch semantic
// document search service.
//
//	client := semsearch.New("http://localhost:8080",
//	    semsearch.WithAPIKey(os.Getenv("SEMSEARCH_API_KEY")),
//	)
//	results, _ := client.Search(ctx, "machine learning basics", semsearch.WithTopK(3))
//	for _, r := range results {
//	    fmt.Printf("%s  %.4f  %s\n", r.ID, r.Score, r.TextSnippet)
//	}
package semsearch
