package hillas

// Region is a 4-connected component of foreground pixels
type Region struct {
	Indices []int
	// Sum of smoothed values over the component
	Light float64
}

// Threshold returns the foreground cut for a given spread estimate
func Threshold(scale, multiplier float64) float64 {
	return multiplier * maxFloat64(scale, scaleFloor)
}

// Components labels the 4-connected components of pixels whose smoothed
// value exceeds threshold. Components are returned in raster order of their first pixel.
func Components(pre *Preprocessed, threshold float64) []Region {
	width, height := pre.Width, pre.Height
	visited := make([]bool, len(pre.Pix))
	regions := make([]Region, 0)
	stack := make([]int, 0, 64)
	for start, v := range pre.Pix {
		if visited[start] || !(v > threshold) {
			continue
		}
		region := Region{Indices: make([]int, 0, 16)}
		visited[start] = true
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			region.Indices = append(region.Indices, idx)
			region.Light += pre.Pix[idx]
			x, y := idx%width, idx/width
			neighbours := [4]struct {
				ok  bool
				idx int
			}{
				{x > 0, idx - 1},
				{x < width-1, idx + 1},
				{y > 0, idx - width},
				{y < height-1, idx + width},
			}
			for _, nb := range neighbours {
				if nb.ok && !visited[nb.idx] && pre.Pix[nb.idx] > threshold {
					visited[nb.idx] = true
					stack = append(stack, nb.idx)
				}
			}
		}
		regions = append(regions, region)
	}
	return regions
}

// Segment thresholds the smoothed image and returns the component carrying the
// most light among those with at least minArea pixels. ok is false when no
// component qualifies.
func Segment(pre *Preprocessed, multiplier float64, minArea int) (region PixelSet, ok bool) {
	threshold := Threshold(pre.Scale, multiplier)
	best := -1
	bestLight := 0.0
	components := Components(pre, threshold)
	for i, c := range components {
		if len(c.Indices) < minArea {
			continue
		}
		// Strictly greater: first component in raster order wins ties
		if c.Light > bestLight {
			best = i
			bestLight = c.Light
		}
	}
	if best < 0 {
		return PixelSet{}, false
	}
	return NewPixelSetFromIndices(components[best].Indices, pre.Pix, pre.Width), true
}
