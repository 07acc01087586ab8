package snapshot

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/sbinet/npyio"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"

	"github.com/stellarpress/biolit/internal/domain"
	"github.com/stellarpress/biolit/internal/domain/record"
	"github.com/stellarpress/biolit/internal/domain/topic"
)

// Paths locates the corpus artifacts.
type Paths struct {
	// Records is the parquet record table (required).
	Records string
	// Topics is the YAML topic catalog (required).
	Topics string
	// Embeddings is the NumPy .npy N x D float32 matrix, row-aligned to
	// the record table. Optional: without it semantic ranking degrades.
	Embeddings string
}

// recordRow mirrors one row of the record-table parquet schema.
type recordRow struct {
	ID        int64   `parquet:"id"`
	Title     string  `parquet:"title"`
	Text      string  `parquet:"text"`
	CleanText string  `parquet:"clean_text"`
	WordCount int64   `parquet:"word_count"`
	Topic     *int64  `parquet:"topic,optional"`
	Year      *int64  `parquet:"year,optional"`
	Journal   *string `parquet:"journal,optional"`
	Link      string  `parquet:"link"`
}

// catalogFile mirrors the topic catalog YAML artifact.
type catalogFile struct {
	Topics []struct {
		ID       int      `yaml:"id"`
		Label    string   `yaml:"label"`
		TopWords []string `yaml:"top_words"`
	} `yaml:"topics"`
}

// Load reads all corpus artifacts and builds the snapshot, including the
// term index. Any missing required artifact or a row-count mismatch
// between the record table and the embedding matrix is fatal. Individual
// malformed rows are skipped and logged, together with their embedding
// row, so table and matrix stay aligned.
func Load(paths Paths, maxVocabulary int, logger *zap.Logger) (*Snapshot, error) {
	rows, err := parquet.ReadFile[recordRow](paths.Records)
	if err != nil {
		return nil, fmt.Errorf("%w: read record table %s: %w", domain.ErrDataUnavailable, paths.Records, err)
	}

	catalog, err := loadCatalog(paths.Topics)
	if err != nil {
		return nil, err
	}

	embeddings, dim, err := loadEmbeddings(paths.Embeddings, len(rows), logger)
	if err != nil {
		return nil, err
	}

	records := make([]record.Record, 0, len(rows))
	for i, row := range rows {
		p := record.Params{
			ID:        int(row.ID),
			Title:     row.Title,
			Text:      row.Text,
			CleanText: row.CleanText,
			WordCount: int(row.WordCount),
			Link:      row.Link,
		}
		if row.Topic != nil {
			t := int(*row.Topic)
			// The offline pipeline marks unclassified articles with -1.
			if t >= 0 {
				p.Topic = &t
			}
		}
		if row.Year != nil {
			y := int(*row.Year)
			p.Year = &y
		}
		if row.Journal != nil {
			p.Journal = *row.Journal
		}
		if embeddings != nil {
			p.Vector = embeddings[i]
		}

		rec, err := record.New(p)
		if err != nil {
			logger.Warn("skipping malformed record", zap.Int("row", i), zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: record table %s has no usable rows", domain.ErrDataUnavailable, paths.Records)
	}

	snap, err := New(records, catalog, maxVocabulary)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
	}

	logger.Info("corpus snapshot loaded",
		zap.Int("records", snap.Len()),
		zap.Int("topics", catalog.Len()),
		zap.Int("vocabulary", snap.TermIndex().VocabularySize()),
		zap.Bool("embeddings", snap.HasEmbeddings()),
		zap.Int("dimensions", dim),
	)
	return snap, nil
}

func loadCatalog(path string) (*topic.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read topic catalog %s: %w", domain.ErrDataUnavailable, path, err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parse topic catalog %s: %w", domain.ErrDataUnavailable, path, err)
	}

	topics := make([]topic.Topic, 0, len(file.Topics))
	for _, entry := range file.Topics {
		t, err := topic.New(entry.ID, entry.Label, entry.TopWords)
		if err != nil {
			return nil, fmt.Errorf("%w: topic catalog %s: %w", domain.ErrDataUnavailable, path, err)
		}
		topics = append(topics, t)
	}
	catalog, err := topic.NewCatalog(topics)
	if err != nil {
		return nil, fmt.Errorf("%w: topic catalog %s: %w", domain.ErrDataUnavailable, path, err)
	}
	return catalog, nil
}

// loadEmbeddings reads the .npy matrix and returns per-row L2-normalized
// float64 vectors. A missing file is not fatal; a shape mismatch is.
func loadEmbeddings(path string, wantRows int, logger *zap.Logger) ([][]float64, int, error) {
	if path == "" {
		logger.Warn("no embeddings artifact configured, semantic ranking disabled")
		return nil, 0, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("embeddings artifact missing, semantic ranking disabled", zap.String("path", path))
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("%w: open embeddings %s: %w", domain.ErrDataUnavailable, path, err)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: parse embeddings %s: %w", domain.ErrDataUnavailable, path, err)
	}
	shape := r.Header.Descr.Shape
	if len(shape) != 2 {
		return nil, 0, fmt.Errorf("%w: embeddings %s: want 2-D matrix, got shape %v", domain.ErrDataUnavailable, path, shape)
	}
	n, dim := shape[0], shape[1]
	if n != wantRows {
		return nil, 0, fmt.Errorf(
			"%w: embeddings %s: %d rows do not match %d records",
			domain.ErrDataUnavailable, path, n, wantRows,
		)
	}
	if dim == 0 {
		return nil, 0, fmt.Errorf("%w: embeddings %s: zero dimensionality", domain.ErrDataUnavailable, path)
	}

	var flat []float32
	if err := r.Read(&flat); err != nil {
		return nil, 0, fmt.Errorf("%w: read embeddings %s: %w", domain.ErrDataUnavailable, path, err)
	}
	if len(flat) != n*dim {
		return nil, 0, fmt.Errorf(
			"%w: embeddings %s: %d values do not match shape %dx%d",
			domain.ErrDataUnavailable, path, len(flat), n, dim,
		)
	}

	vectors := make([][]float64, n)
	for i := 0; i < n; i++ {
		v := make([]float64, dim)
		for j := 0; j < dim; j++ {
			v[j] = float64(flat[i*dim+j])
		}
		if norm := floats.Norm(v, 2); norm > 0 {
			floats.Scale(1/norm, v)
		}
		vectors[i] = v
	}
	return vectors, dim, nil
}
