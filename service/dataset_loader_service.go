package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"nestfinder/config"
	"nestfinder/models"
	"nestfinder/scoring"
	"nestfinder/util"
)

// ListingWriter persists listings loaded from the listings dataset.
type ListingWriter interface {
	UpsertMany(ctx context.Context, items []models.Listing) error
}

// POIIndexer replaces the indexed points of interest of one category.
type POIIndexer interface {
	ReplaceCategory(ctx context.Context, category models.POICategory, pois []models.PointOfInterest) error
}

// Datasets is everything read at startup. It is never mutated afterwards.
type Datasets struct {
	Listings      []models.Listing
	Neighborhoods *scoring.NeighborhoodTable
	Market        *scoring.MarketTable
	Safety        *scoring.SafetyIndex
	POICounts     map[models.POICategory]int
}

// MissingPOICategories lists the categories that were not indexed. A
// category whose file loaded but was empty counts as indexed.
func (d *Datasets) MissingPOICategories() []models.POICategory {
	var missing []models.POICategory
	for _, category := range models.POICategories {
		if _, ok := d.POICounts[category]; !ok {
			missing = append(missing, category)
		}
	}
	return missing
}

// HasPOIs reports whether every point-of-interest category was indexed.
// Walkability scored with a category missing would read as "nothing nearby".
func (d *Datasets) HasPOIs() bool {
	return len(d.MissingPOICategories()) == 0
}

// DatasetLoaderService reads the configured datasets once, indexes points of
// interest and stores listings. Missing files are skipped with a warning;
// malformed files fail the load.
type DatasetLoaderService struct {
	data     config.DataConfig
	listings ListingWriter
	pois     POIIndexer
	logger   *zap.Logger
}

// NewDatasetLoaderService builds a loader. listings and pois may be nil, in
// which case that part of the load only reads the files.
func NewDatasetLoaderService(data config.DataConfig, listings ListingWriter, pois POIIndexer, logger *zap.Logger) *DatasetLoaderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DatasetLoaderService{
		data:     data,
		listings: listings,
		pois:     pois,
		logger:   logger.Named("DatasetLoaderService"),
	}
}

func (s *DatasetLoaderService) Load(ctx context.Context) (*Datasets, error) {
	ds := &Datasets{POICounts: map[models.POICategory]int{}}

	if err := s.loadReferenceTables(ds); err != nil {
		return nil, err
	}
	if err := s.loadSafety(ds); err != nil {
		return nil, err
	}
	if err := s.loadListings(ctx, ds); err != nil {
		return nil, err
	}
	if err := s.loadPOIs(ctx, ds); err != nil {
		return nil, err
	}

	s.logger.Info("datasets loaded",
		zap.Int("listings", len(ds.Listings)),
		zap.Int("neighborhoods", len(ds.Neighborhoods.Names())),
		zap.Bool("incident_safety", ds.Safety != nil),
		zap.Any("pois", ds.POICounts),
	)
	return ds, nil
}

// skip reports whether err means the file is simply absent.
func (s *DatasetLoaderService) skip(dataset, path string, err error) bool {
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("dataset file not found, skipping", zap.String("dataset", dataset), zap.String("path", path))
		return true
	}
	return false
}

func (s *DatasetLoaderService) loadReferenceTables(ds *Datasets) error {
	ds.Neighborhoods = scoring.OttawaNeighborhoodTable()
	if path := config.ResolvePath(s.data.Neighborhoods); path != "" {
		profiles, err := util.ReadNeighborhoodProfilesFromJSON(path)
		switch {
		case err == nil:
			ds.Neighborhoods = scoring.NewNeighborhoodTable(profiles, scoring.DefaultNeighborhoodProfile)
		case !s.skip("neighborhoods", path, err):
			return fmt.Errorf("[DatasetLoaderService] failed to load neighborhoods: %w", err)
		}
	}

	ds.Market = scoring.OttawaMarketTable()
	if path := config.ResolvePath(s.data.MarketAverages); path != "" {
		rows, err := util.ReadMarketAveragesFromJSON(path)
		switch {
		case err == nil:
			ds.Market = scoring.NewMarketTableWithDefaults(rows)
		case !s.skip("market_averages", path, err):
			return fmt.Errorf("[DatasetLoaderService] failed to load market averages: %w", err)
		}
	}
	return nil
}

func (s *DatasetLoaderService) loadSafety(ds *Datasets) error {
	path := config.ResolvePath(s.data.Incidents)
	if path == "" {
		return nil
	}
	incidents, err := util.ReadIncidentsFromJSON(path)
	if err != nil {
		if s.skip("incidents", path, err) {
			return nil
		}
		return fmt.Errorf("[DatasetLoaderService] failed to load incidents: %w", err)
	}
	ds.Safety = scoring.NewSafetyIndex(incidents, scoring.DefaultIncidentSeverity)
	return nil
}

func (s *DatasetLoaderService) loadListings(ctx context.Context, ds *Datasets) error {
	path := config.ResolvePath(s.data.Listings)
	if path == "" {
		return nil
	}
	listings, err := util.ReadListingsFromJSON(path)
	if err != nil {
		if s.skip("listings", path, err) {
			return nil
		}
		return fmt.Errorf("[DatasetLoaderService] failed to load listings: %w", err)
	}
	ds.Listings = listings

	if s.listings != nil {
		if err := s.listings.UpsertMany(ctx, listings); err != nil {
			return fmt.Errorf("[DatasetLoaderService] failed to store listings: %w", err)
		}
	}
	return nil
}

func (s *DatasetLoaderService) loadPOIs(ctx context.Context, ds *Datasets) error {
	sources := []struct {
		category models.POICategory
		path     string
		read     func(string) ([]models.PointOfInterest, error)
	}{
		{models.CategoryParks, s.data.Parks, util.ReadParksFromGeoJSON},
		{models.CategorySchools, s.data.Schools, util.ReadSchoolsFromGeoJSON},
		{models.CategoryGroceries, s.data.Groceries, util.ReadGroceriesFromJSON},
	}

	for _, src := range sources {
		path := config.ResolvePath(src.path)
		if path == "" {
			continue
		}
		pois, err := src.read(path)
		if err != nil {
			if s.skip(string(src.category), path, err) {
				continue
			}
			return fmt.Errorf("[DatasetLoaderService] failed to load %s: %w", src.category, err)
		}
		if s.pois != nil {
			if err := s.pois.ReplaceCategory(ctx, src.category, pois); err != nil {
				return fmt.Errorf("[DatasetLoaderService] failed to index %s: %w", src.category, err)
			}
		}
		ds.POICounts[src.category] = len(pois)
	}
	return nil
}
