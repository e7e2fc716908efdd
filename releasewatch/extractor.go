package releasewatch

import (
	"fmt"
	"log"
	"sync"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const (
	WorkerCount      = 5
	extractorTimeout = 30 * time.Second
)

// ExtractAllContent fetches and extracts full page content for all releases
// using a worker pool. Extraction failures are recorded on the release, not
// returned: a release without full content is still matchable by title.
func ExtractAllContent(releases []*Release) {
	var wg sync.WaitGroup
	releaseChan := make(chan *Release, len(releases))

	for i := 0; i < WorkerCount; i++ {
		go func(workerID int) {
			for release := range releaseChan {
				if err := extractContent(release); err != nil {
					release.ExtractionError = err.Error()
					log.Printf("[Worker %d] Failed to extract %s: %v", workerID, release.URL, err)
				}
				wg.Done()
			}
		}(i)
	}

	for _, release := range releases {
		wg.Add(1)
		releaseChan <- release
	}

	wg.Wait()
	close(releaseChan)
}

func extractContent(release *Release) error {
	if release.URL == "" {
		return fmt.Errorf("release URL is empty")
	}

	extracted, err := readability.FromURL(release.URL, extractorTimeout)
	if err != nil {
		return fmt.Errorf("readability extraction failed: %w", err)
	}

	release.Content = extracted.Content
	release.ContentText = extracted.TextContent

	log.Printf("✓ Extracted: %s", release.Title)
	return nil
}
