package model

import "testing"

func TestSweepsFromRadialsGroupsByElevation(t *testing.T) {
	radials := []Radial{
		{ElevationNumber: 1, AzimuthNumber: 1},
		{ElevationNumber: 1, AzimuthNumber: 2},
		{ElevationNumber: 2, AzimuthNumber: 1},
		{ElevationNumber: 1, AzimuthNumber: 3},
	}

	sweeps := SweepsFromRadials(radials)
	if len(sweeps) != 2 {
		t.Fatalf("got %d sweeps, want 2", len(sweeps))
	}
	if sweeps[0].ElevationNumber != 1 || len(sweeps[0].Radials) != 3 {
		t.Errorf("sweep 0 = %+v, want elevation 1 with 3 radials", sweeps[0])
	}
	if sweeps[1].ElevationNumber != 2 || len(sweeps[1].Radials) != 1 {
		t.Errorf("sweep 1 = %+v, want elevation 2 with 1 radial", sweeps[1])
	}
}
