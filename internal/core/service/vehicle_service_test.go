package service

import (
	"context"
	"errors"
	"testing"

	"github.com/showroom/vehicle-catalog/internal/core/domain"
	"github.com/showroom/vehicle-catalog/internal/core/ports"
)

func catalogue() []domain.Vehicle {
	return []domain.Vehicle{
		{ID: 10, Brand: "Toyota", Model: "Yaris", Year: 2020, Price: 15000},
		{ID: 11, Brand: "Audi", Model: "A4", Year: 2018, Price: 30000},
		{ID: 12, Brand: "Toyota", Model: "RAV4", Year: 2022, Price: 30000},
		{ID: 13, Brand: "Mazda", Model: "CX-5", Year: 2021, Price: 27000},
	}
}

func vehicleIDs(vs []domain.Vehicle) []int {
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i] = v.ID
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestVehicleService_List_NoParamsKeepsStoreOrder(t *testing.T) {
	repo := &stubVehicleRepo{records: catalogue()}
	svc := NewVehicleService(repo, nil, discardLogger)

	got, err := svc.ListVehicles(context.Background(), ports.ListVehiclesInput{Search: ""})
	if err != nil {
		t.Fatalf("ListVehicles: %v", err)
	}
	if want := []int{10, 11, 12, 13}; !equalInts(vehicleIDs(got), want) {
		t.Fatalf("expected %v, got %v", want, vehicleIDs(got))
	}
}

func TestVehicleService_List_SearchIsCaseInsensitive(t *testing.T) {
	repo := &stubVehicleRepo{records: catalogue()}
	svc := NewVehicleService(repo, nil, discardLogger)

	got, err := svc.ListVehicles(context.Background(), ports.ListVehiclesInput{Search: "oyota"})
	if err != nil {
		t.Fatalf("ListVehicles: %v", err)
	}
	if want := []int{10, 12}; !equalInts(vehicleIDs(got), want) {
		t.Fatalf("expected %v, got %v", want, vehicleIDs(got))
	}
	if repo.lastQuery.Search != "oyota" {
		t.Fatalf("filter not passed to the store: %+v", repo.lastQuery)
	}
}

func TestVehicleService_List_PriceDescStable(t *testing.T) {
	repo := &stubVehicleRepo{records: catalogue()}
	svc := NewVehicleService(repo, nil, discardLogger)

	got, err := svc.ListVehicles(context.Background(), ports.ListVehiclesInput{SortBy: "price", SortOrder: "desc"})
	if err != nil {
		t.Fatalf("ListVehicles: %v", err)
	}
	if want := []int{11, 12, 13, 10}; !equalInts(vehicleIDs(got), want) {
		t.Fatalf("expected %v, got %v", want, vehicleIDs(got))
	}
	// the store keeps its order
	if want := []int{10, 11, 12, 13}; !equalInts(vehicleIDs(repo.records), want) {
		t.Fatalf("store was mutated: %v", vehicleIDs(repo.records))
	}
}

func TestVehicleService_List_UnknownSortIgnored(t *testing.T) {
	repo := &stubVehicleRepo{records: catalogue()}
	svc := NewVehicleService(repo, nil, discardLogger)

	got, err := svc.ListVehicles(context.Background(), ports.ListVehiclesInput{SortBy: "nope", SortOrder: "desc"})
	if err != nil {
		t.Fatalf("ListVehicles: %v", err)
	}
	if want := []int{10, 11, 12, 13}; !equalInts(vehicleIDs(got), want) {
		t.Fatalf("expected %v, got %v", want, vehicleIDs(got))
	}
}

func TestVehicleService_List_StoreError(t *testing.T) {
	repo := &stubVehicleRepo{err: errStoreDown}
	svc := NewVehicleService(repo, nil, discardLogger)

	if _, err := svc.ListVehicles(context.Background(), ports.ListVehiclesInput{}); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestVehicleService_Get(t *testing.T) {
	repo := &stubVehicleRepo{records: catalogue()}
	svc := NewVehicleService(repo, nil, discardLogger)

	v, err := svc.GetVehicle(context.Background(), 12)
	if err != nil {
		t.Fatalf("GetVehicle: %v", err)
	}
	if v.Model != "RAV4" {
		t.Fatalf("unexpected vehicle: %+v", v)
	}

	if _, err := svc.GetVehicle(context.Background(), 999); !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
}

func TestVehicleService_Get_UsesCache(t *testing.T) {
	repo := &stubVehicleRepo{records: catalogue()}
	cache := newStubCache()
	svc := NewVehicleService(repo, cache, discardLogger)

	if _, err := svc.GetVehicle(context.Background(), 11); err != nil {
		t.Fatalf("first GetVehicle: %v", err)
	}
	if _, ok := cache.items[11]; !ok {
		t.Fatalf("expected record to be cached")
	}

	repo.err = errStoreDown
	v, err := svc.GetVehicle(context.Background(), 11)
	if err != nil {
		t.Fatalf("expected cache hit, got %v", err)
	}
	if v.Brand != "Audi" || cache.hits != 1 {
		t.Fatalf("unexpected cache result: %+v hits=%d", v, cache.hits)
	}
}

func TestVehicleService_Get_CacheFailureFallsThrough(t *testing.T) {
	repo := &stubVehicleRepo{records: catalogue()}
	cache := newStubCache()
	cache.getErr = errors.New("redis down")
	svc := NewVehicleService(repo, cache, discardLogger)

	v, err := svc.GetVehicle(context.Background(), 13)
	if err != nil {
		t.Fatalf("GetVehicle: %v", err)
	}
	if v.Brand != "Mazda" {
		t.Fatalf("unexpected vehicle: %+v", v)
	}
}
