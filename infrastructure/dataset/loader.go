// Package dataset reads sales datasets from JSON sources.
package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/ahrav/go-tally/internal/domain"
	"github.com/ahrav/go-tally/internal/ports"
)

var _ ports.DatasetLoader = (*Loader)(nil)

// File names read by LoadDir, one per collection.
const (
	SellersFile         = "sellers.json"
	ProductsFile        = "products.json"
	PurchaseRecordsFile = "purchase_records.json"
)

// Collection names used in load errors.
const (
	collectionSellers         = "sellers"
	collectionProducts        = "products"
	collectionPurchaseRecords = "purchase_records"
)

// Loader implements ports.DatasetLoader over the local filesystem. A source
// naming a directory is read with LoadDir, anything else with LoadFile.
type Loader struct {
	// Strict rejects datasets whose records fail Validate.
	Strict bool
}

// Load reads the dataset at source.
func (l *Loader) Load(ctx context.Context, source string) (*domain.Dataset, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, ports.NewLoadError(source, "", sourceErr(err))
	}

	var data *domain.Dataset
	if info.IsDir() {
		data, err = LoadDir(ctx, source)
	} else {
		data, err = LoadFile(ctx, source)
	}
	if err != nil {
		return nil, err
	}

	if l.Strict {
		if err := Validate(data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// LoadFile reads a single JSON document holding all three collections:
//
//	{"sellers": [...], "products": [...], "purchase_records": [...]}
//
// Unknown fields are ignored. Absent collections stay nil so the analyzer
// can tell them apart from empty ones.
func LoadFile(ctx context.Context, path string) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, ports.NewLoadError(path, "", sourceErr(err))
	}
	defer func() { _ = f.Close() }()

	return LoadReader(ctx, f, path)
}

// LoadReader decodes a single-document dataset from r. source only labels
// errors.
func LoadReader(ctx context.Context, r io.Reader, source string) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data domain.Dataset
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, ports.NewLoadError(source, "", fmt.Errorf("%w: %w", ports.ErrMalformedSource, err))
	}
	return &data, nil
}

// LoadDir reads a dataset split across SellersFile, ProductsFile and
// PurchaseRecordsFile in dir. The files are decoded concurrently and the
// first failure cancels the remaining reads.
func LoadDir(ctx context.Context, dir string) (*domain.Dataset, error) {
	var data domain.Dataset

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return readCollection(ctx, dir, SellersFile, collectionSellers, &data.Sellers)
	})
	g.Go(func() error {
		return readCollection(ctx, dir, ProductsFile, collectionProducts, &data.Products)
	})
	g.Go(func() error {
		return readCollection(ctx, dir, PurchaseRecordsFile, collectionPurchaseRecords, &data.PurchaseRecords)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

// readCollection decodes the JSON array in dir/name into target. Each
// goroutine owns a distinct target field.
func readCollection[T any](ctx context.Context, dir, name, collection string, target *[]T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		return ports.NewLoadError(path, collection, sourceErr(err))
	}

	// A canceled sibling makes this result irrelevant.
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return ports.NewLoadError(path, collection, fmt.Errorf("%w: %w", ports.ErrMalformedSource, err))
	}
	return nil
}

func sourceErr(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ports.ErrSourceNotFound, err)
	}
	return err
}
