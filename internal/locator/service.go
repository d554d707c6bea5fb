package locator

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/lucifer43562/wastelink-backend/pkg/config"
	"github.com/lucifer43562/wastelink-backend/pkg/db/models"
	pkgerrors "github.com/lucifer43562/wastelink-backend/pkg/errors"
)

// NearbyBody carries the customer coordinates submitted to the locator.
// The coordinates are validated but do not influence the ranking; the
// simulated distances are independent of where the caller stands.
type NearbyBody struct {
	Lat *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
}

// NearbyCompanyDTO is a catalog entry ranked by simulated distance.
type NearbyCompanyDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Rating   float64   `json:"rating"`
	Distance string    `json:"distance"`
	Services []string  `json:"services"`
}

// NearbyResponse wraps the ranked catalog slice.
type NearbyResponse struct {
	Companies []NearbyCompanyDTO `json:"companies"`
}

type companyCatalog interface {
	ListAll(ctx context.Context) ([]models.Company, error)
}

// Service ranks catalog companies by a simulated distance from the customer.
// Real geocoding is intentionally out of scope; each call jitters the per-company
// base distance so results vary between searches the way a live signal would.
type Service interface {
	Nearby(ctx context.Context, body NearbyBody) (*NearbyResponse, error)
}

type service struct {
	catalog companyCatalog
	cfg     config.LocatorConfig
	rng     func() float64
}

// ServiceParams bundles the locator dependencies. Rand is the jitter source and
// defaults to math/rand; tests inject a deterministic one.
type ServiceParams struct {
	Catalog companyCatalog
	Config  config.LocatorConfig
	Rand    func() float64
}

// NewService constructs a locator service.
func NewService(params ServiceParams) (Service, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("company catalog required")
	}
	rng := params.Rand
	if rng == nil {
		rng = rand.Float64
	}
	cfg := params.Config
	if cfg.ResultCount <= 0 {
		cfg.ResultCount = 5
	}
	if cfg.DistanceUnit == "" {
		cfg.DistanceUnit = "km"
	}
	return &service{
		catalog: params.Catalog,
		cfg:     cfg,
		rng:     rng,
	}, nil
}

type rankedCompany struct {
	company  models.Company
	distance float64
}

func (s *service) Nearby(ctx context.Context, body NearbyBody) (*NearbyResponse, error) {
	if body.Lat == nil || body.Lng == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lat and lng are required")
	}
	if *body.Lat < -90 || *body.Lat > 90 || *body.Lng < -180 || *body.Lng > 180 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coordinates out of range")
	}

	catalog, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load company catalog")
	}

	ranked := make([]rankedCompany, 0, len(catalog))
	for _, company := range catalog {
		ranked = append(ranked, rankedCompany{
			company:  company,
			distance: company.BaseDistanceKM + s.rng()*s.cfg.JitterKM,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].distance < ranked[j].distance
	})

	count := s.cfg.ResultCount
	if count > len(ranked) {
		count = len(ranked)
	}

	companies := make([]NearbyCompanyDTO, 0, count)
	for _, entry := range ranked[:count] {
		services := []string(entry.company.Services)
		if services == nil {
			services = []string{}
		}
		companies = append(companies, NearbyCompanyDTO{
			ID:       entry.company.ID,
			Name:     entry.company.Name,
			Rating:   entry.company.Rating,
			Distance: fmt.Sprintf("%.1f %s", entry.distance, s.cfg.DistanceUnit),
			Services: services,
		})
	}

	return &NearbyResponse{Companies: companies}, nil
}
