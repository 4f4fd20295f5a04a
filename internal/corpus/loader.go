package corpus

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// LoadFiles reads the emotion-dialogue corpus and any number of support Q/A
// corpora concurrently and combines them into one immutable store. Paths may
// be empty, which yields an empty slice for that source.
func LoadFiles(ctx context.Context, emotionPath string, supportPaths []string) (*Store, error) {
	var (
		mu      sync.Mutex
		emotion []Record
		support []Record
	)

	g, ctx := errgroup.WithContext(ctx)
	if emotionPath != "" {
		g.Go(func() error {
			records, err := loadEmotionCSV(emotionPath)
			if err != nil {
				return err
			}
			mu.Lock()
			emotion = records
			mu.Unlock()
			return ctx.Err()
		})
	}
	for _, path := range supportPaths {
		path := path
		g.Go(func() error {
			records, err := loadSupportCSV(path)
			if err != nil {
				return err
			}
			mu.Lock()
			support = append(support, records...)
			mu.Unlock()
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return NewStore(emotion, support), nil
}

// loadEmotionCSV parses the emotion-tagged dialogue corpus. Expected header
// columns: Situation, emotion, empathetic_dialogues; the reusable response is
// the agent side of the dialogue.
func loadEmotionCSV(path string) ([]Record, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	situation, ok := header["situation"]
	if !ok {
		return nil, fmt.Errorf("%s: missing Situation column", path)
	}
	emotionCol, ok := header["emotion"]
	if !ok {
		return nil, fmt.Errorf("%s: missing emotion column", path)
	}
	dialogue, ok := header["empathetic_dialogues"]
	if !ok {
		return nil, fmt.Errorf("%s: missing empathetic_dialogues column", path)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		response := extractAgentResponse(field(row, dialogue))
		query := strings.TrimSpace(field(row, situation))
		if query == "" || response == "" {
			continue
		}
		records = append(records, Record{
			Query:      query,
			Response:   response,
			EmotionTag: strings.TrimSpace(field(row, emotionCol)),
			SourceID:   SourceEmotion,
		})
	}
	return records, nil
}

// loadSupportCSV parses a general support Q/A corpus with input/output
// columns.
func loadSupportCSV(path string) ([]Record, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	input, ok := header["input"]
	if !ok {
		return nil, fmt.Errorf("%s: missing input column", path)
	}
	output, ok := header["output"]
	if !ok {
		return nil, fmt.Errorf("%s: missing output column", path)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		query := strings.TrimSpace(field(row, input))
		response := strings.TrimSpace(field(row, output))
		if query == "" || response == "" {
			continue
		}
		records = append(records, Record{
			Query:    query,
			Response: response,
			SourceID: SourceSupport,
		})
	}
	return records, nil
}

func readCSV(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: read header: %w", path, err)
	}
	header := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%s: read row: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// extractAgentResponse pulls the agent side out of a recorded dialogue; the
// corpus marks it with an "Agent :" label. Without the label the whole
// dialogue is used.
func extractAgentResponse(dialogue string) string {
	if _, after, found := strings.Cut(dialogue, "Agent :"); found {
		return strings.TrimSpace(after)
	}
	return strings.TrimSpace(dialogue)
}
