package ioformats

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

// ReadFeed returns the article links of an RSS/Atom/JSON feed in feed order,
// skipping items without a link and duplicates.
func ReadFeed(ctx context.Context, feedURL, userAgent string) ([]string, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = userAgent
	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("read feed %s: %w", feedURL, err)
	}
	return feedLinks(feed)
}

func feedLinks(feed *gofeed.Feed) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, item := range feed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" && len(item.Links) > 0 {
			link = strings.TrimSpace(item.Links[0])
		}
		if link == "" || seen[link] {
			continue
		}
		seen[link] = true
		out = append(out, link)
	}
	if len(out) == 0 {
		return nil, errors.New("feed has no article links")
	}
	return out, nil
}
