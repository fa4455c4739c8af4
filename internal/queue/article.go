package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openmediawatch/backend/internal/store"
	"github.com/openmediawatch/backend/internal/util"
	"github.com/openmediawatch/backend/pkg/common"
	"github.com/openmediawatch/backend/pkg/logger"
	"github.com/openmediawatch/backend/pkg/network"

	"github.com/rabbitmq/amqp091-go"
)

// ArticleMessage is the payload published to article_queue. Content holds
// either raw article text or full markup depending on IsHTML.
type ArticleMessage struct {
	SourceName string `json:"source_name"`
	ArticleID  int64  `json:"article_id"`
	Content    string `json:"content"`
	IsHTML     bool   `json:"is_html"`
}

// QueueArticle publishes an article for asynchronous citation extraction.
func QueueArticle(ch *amqp091.Channel, msg ArticleMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal article message: %w", err)
	}
	return PublishFIFO(ch, ArticleQueue, data)
}

// ProcessArticleMessage extracts citations from one queued article, records
// them in the network and persists them. Persistence failures are retried a
// few times before the message is handed back for requeueing.
func ProcessArticleMessage(
	ctx context.Context,
	net *network.Network,
	extractor *network.Extractor,
	storage *store.CitationStorage,
	msg string,
) error {
	data := new(ArticleMessage)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return fmt.Errorf("failed to unmarshal article message: %w", err)
	}
	if data.SourceName == "" {
		return fmt.Errorf("article message missing source_name")
	}

	found := extractor.Extract(data.SourceName, data.ArticleID, data.Content, data.IsHTML)
	logger.Info("[Queue] Extracted citations", "source", data.SourceName, "article_id", data.ArticleID, "count", len(found))
	if len(found) == 0 {
		return nil
	}

	recorded := make([]common.Citation, 0, len(found))
	for _, c := range found {
		added, err := net.AddCitation(c)
		if err != nil {
			logger.Warn("[Queue] Skipping invalid citation", "source", data.SourceName, "err", err)
			continue
		}
		recorded = append(recorded, added)
	}

	if storage == nil || len(recorded) == 0 {
		return nil
	}
	err := util.RetryErrWithContext(ctx, 3, func(ctx context.Context) error {
		return storage.SaveCitations(ctx, recorded)
	})
	if err != nil {
		return fmt.Errorf("failed to persist citations: %w", err)
	}
	return nil
}
