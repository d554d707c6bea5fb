package locator

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/lucifer43562/wastelink-backend/pkg/config"
	"github.com/lucifer43562/wastelink-backend/pkg/db/models"
	dbtypes "github.com/lucifer43562/wastelink-backend/pkg/db/types"
	pkgerrors "github.com/lucifer43562/wastelink-backend/pkg/errors"
)

type stubCatalog struct {
	companies []models.Company
	err       error
}

func (s stubCatalog) ListAll(ctx context.Context) ([]models.Company, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.companies, nil
}

func sampleCatalog() []models.Company {
	return []models.Company{
		{
			ID:             uuid.New(),
			Name:           "EcoClean Solutions",
			Rating:         4.8,
			Services:       dbtypes.StringArray{"Electronic Waste", "Plastic Waste", "Metal Waste"},
			BaseDistanceKM: 1.0,
		},
		{
			ID:             uuid.New(),
			Name:           "GreenWaste Recyclers",
			Rating:         4.6,
			Services:       dbtypes.StringArray{"Organic Waste", "Paper Waste", "Glass Waste"},
			BaseDistanceKM: 2.0,
		},
		{
			ID:             uuid.New(),
			Name:           "WasteCare Pro",
			Rating:         4.7,
			Services:       dbtypes.StringArray{"Electronic Waste", "Hazardous Waste", "Bulk Waste"},
			BaseDistanceKM: 3.0,
		},
		{
			ID:             uuid.New(),
			Name:           "RecycleMaster Inc",
			Rating:         4.5,
			Services:       dbtypes.StringArray{"All Types", "Pickup Service", "24/7 Available"},
			BaseDistanceKM: 4.0,
		},
		{
			ID:             uuid.New(),
			Name:           "Local Waste Solutions",
			Rating:         4.9,
			Services:       dbtypes.StringArray{"Residential Pickup", "Commercial Waste", "Recycling"},
			BaseDistanceKM: 0.5,
		},
	}
}

func sampleCoords() NearbyBody {
	lat, lng := 40.7128, -74.0060
	return NearbyBody{Lat: &lat, Lng: &lng}
}

func testLocatorConfig() config.LocatorConfig {
	return config.LocatorConfig{ResultCount: 5, JitterKM: 3, DistanceUnit: "km"}
}

func newTestService(t *testing.T, catalog stubCatalog, rng func() float64) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Catalog: catalog,
		Config:  testLocatorConfig(),
		Rand:    rng,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func parseDistance(t *testing.T, value string) float64 {
	t.Helper()
	trimmed := strings.TrimSuffix(value, " km")
	if trimmed == value {
		t.Fatalf("distance %q missing km suffix", value)
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		t.Fatalf("parse distance %q: %v", value, err)
	}
	return parsed
}

func TestNearbyRanksByDistanceAscending(t *testing.T) {
	svc := newTestService(t, stubCatalog{companies: sampleCatalog()}, func() float64 { return 0.5 })

	resp, err := svc.Nearby(context.Background(), sampleCoords())
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(resp.Companies) != 5 {
		t.Fatalf("expected 5 companies, got %d", len(resp.Companies))
	}

	last := -1.0
	for _, company := range resp.Companies {
		distance := parseDistance(t, company.Distance)
		if distance < last {
			t.Fatalf("companies not sorted ascending: %v", resp.Companies)
		}
		last = distance
	}

	// fixed jitter keeps base ordering: Local Waste Solutions has the smallest base
	if resp.Companies[0].Name != "Local Waste Solutions" {
		t.Fatalf("expected Local Waste Solutions first, got %s", resp.Companies[0].Name)
	}
}

func TestNearbyDistancesVaryBetweenSearches(t *testing.T) {
	calls := 0
	rng := func() float64 {
		calls++
		return float64(calls%10) / 10
	}
	svc := newTestService(t, stubCatalog{companies: sampleCatalog()}, rng)

	first, err := svc.Nearby(context.Background(), sampleCoords())
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	second, err := svc.Nearby(context.Background(), sampleCoords())
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}

	varied := false
	for _, a := range first.Companies {
		for _, b := range second.Companies {
			if a.Name == b.Name && a.Distance != b.Distance {
				varied = true
			}
		}
	}
	if !varied {
		t.Fatalf("expected distances to vary between searches")
	}
}

func TestNearbyCapsResultCount(t *testing.T) {
	svc, err := NewService(ServiceParams{
		Catalog: stubCatalog{companies: sampleCatalog()},
		Config:  config.LocatorConfig{ResultCount: 3, JitterKM: 1, DistanceUnit: "km"},
		Rand:    func() float64 { return 0 },
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	resp, err := svc.Nearby(context.Background(), sampleCoords())
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(resp.Companies) != 3 {
		t.Fatalf("expected 3 companies, got %d", len(resp.Companies))
	}
}

func TestNearbyRequiresCoordinates(t *testing.T) {
	svc := newTestService(t, stubCatalog{companies: sampleCatalog()}, nil)

	_, err := svc.Nearby(context.Background(), NearbyBody{})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNearbyEmptyCatalog(t *testing.T) {
	svc := newTestService(t, stubCatalog{}, nil)

	resp, err := svc.Nearby(context.Background(), sampleCoords())
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(resp.Companies) != 0 {
		t.Fatalf("expected empty result, got %d", len(resp.Companies))
	}
}
