package hillas

import (
	"sort"
	"testing"
)

func preprocessedFrom(width, height int, pix []float64, scale float64) *Preprocessed {
	return &Preprocessed{Width: width, Height: height, Pix: pix, Scale: scale}
}

func TestComponentsFourConnectivity(t *testing.T) {
	// Diagonal neighbours are separate components
	pix := []float64{
		5, 0, 0, 0,
		0, 5, 0, 5,
		0, 0, 0, 5,
	}
	regions := Components(preprocessedFrom(4, 3, pix, 1), 1)
	if len(regions) != 3 {
		t.Errorf("Wrong number of components: %d, expected: %d", len(regions), 3)
		return
	}
	sizes := []int{len(regions[0].Indices), len(regions[1].Indices), len(regions[2].Indices)}
	sort.Ints(sizes)
	if sizes[0] != 1 || sizes[1] != 1 || sizes[2] != 2 {
		t.Errorf("Wrong component sizes: %v, expected: %v", sizes, []int{1, 1, 2})
	}
}

func TestComponentsLargeRegion(t *testing.T) {
	width, height := 300, 300
	pix := make([]float64, width*height)
	for i := range pix {
		pix[i] = 1
	}
	regions := Components(preprocessedFrom(width, height, pix, 0.1), 0.5)
	if len(regions) != 1 || len(regions[0].Indices) != width*height {
		t.Errorf("Whole image should form one component")
	}
}

func TestSegmentPrefersLightOverArea(t *testing.T) {
	// Left: 6 dim pixels (total 12). Right: 4 bright pixels (total 40)
	width, height := 9, 3
	pix := make([]float64, width*height)
	for _, idx := range []int{0, 1, 2, 9, 10, 11} {
		pix[idx] = 2
	}
	for _, idx := range []int{6, 7, 15, 16} {
		pix[idx] = 10
	}
	region, ok := Segment(preprocessedFrom(width, height, pix, 0.5), 3, 4)
	if !ok {
		t.Errorf("Expected a region")
		return
	}
	if region.Len() != 4 {
		t.Errorf("Wrong region size: %d, expected: %d", region.Len(), 4)
	}
	if w := region.TotalWeight(); w != 40 {
		t.Errorf("Wrong region weight: %v, expected: %v", w, 40.0)
	}
	bbox := region.BBox()
	if bbox != NewRect(6, 0, 2, 2) {
		t.Errorf("Wrong bounding box: %v, expected: %v", bbox, NewRect(6, 0, 2, 2))
	}
}

func TestSegmentAreaFilter(t *testing.T) {
	width, height := 9, 3
	pix := make([]float64, width*height)
	for _, idx := range []int{6, 7, 15, 16} {
		pix[idx] = 10
	}
	if _, ok := Segment(preprocessedFrom(width, height, pix, 0.5), 3, 5); ok {
		t.Errorf("Region smaller than the minimum area must be rejected")
	}
}

func TestSegmentEmpty(t *testing.T) {
	pix := make([]float64, 16)
	if _, ok := Segment(preprocessedFrom(4, 4, pix, 0), 3, 1); ok {
		t.Errorf("Empty mask must yield no region")
	}
}

func TestThresholdFloor(t *testing.T) {
	if th := Threshold(0, 3); th <= 0 {
		t.Errorf("Threshold must stay positive on a uniform image, got %v", th)
	}
	if th := Threshold(2, 3); th != 6 {
		t.Errorf("Wrong threshold: %v, expected: %v", th, 6.0)
	}
}
