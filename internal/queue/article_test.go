package queue

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/openmediawatch/backend/pkg/network"
)

func TestProcessArticleMessage_RecordsCitations(t *testing.T) {
	net := network.New()
	net.AddSource("Fox News", "foxnews.com", "right")
	extractor := network.NewExtractor(network.ExtractorParams{})

	msg, err := json.Marshal(ArticleMessage{
		SourceName: "Fox News",
		ArticleID:  42,
		Content:    `<p>As <a href="https://cnn.com/story">CNN</a> reported earlier.</p>`,
		IsHTML:     true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ProcessArticleMessage(context.Background(), net, extractor, nil, string(msg)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := net.EdgeWeight("Fox News", "CNN"); got != 1 {
		t.Fatalf("expected the extracted citation to be recorded, edge weight %d", got)
	}
	citations := net.Citations()
	if len(citations) != 1 || citations[0].ArticleID != 42 {
		t.Fatalf("unexpected citations: %v", citations)
	}
}

func TestProcessArticleMessage_BadPayload(t *testing.T) {
	net := network.New()
	extractor := network.NewExtractor(network.ExtractorParams{})

	if err := ProcessArticleMessage(context.Background(), net, extractor, nil, "{not json"); err == nil {
		t.Fatal("expected an error for malformed payload")
	}
	if err := ProcessArticleMessage(context.Background(), net, extractor, nil, `{"article_id":1}`); err == nil {
		t.Fatal("expected an error for a message without source_name")
	}
	if net.TotalCitations() != 0 {
		t.Fatal("failed messages must not record citations")
	}
}

func TestProcessArticleMessage_NoMatchesIsNotAnError(t *testing.T) {
	net := network.New()
	extractor := network.NewExtractor(network.ExtractorParams{})

	msg, _ := json.Marshal(ArticleMessage{
		SourceName: "Fox News",
		ArticleID:  1,
		Content:    "Nothing quotable here.",
	})
	if err := ProcessArticleMessage(context.Background(), net, extractor, nil, string(msg)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if net.TotalCitations() != 0 {
		t.Fatalf("expected no citations, got %d", net.TotalCitations())
	}
}
