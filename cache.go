package ringicon

import (
	"sync"
)

var globalCache = &cache{}

type cache struct {
	m sync.Map
}

// LoadRaster returns the rendered raster for size, rendering it on first use.
func LoadRaster(size int) *Raster {
	if v, ok := globalCache.m.Load(size); ok {
		if r, ok := v.(*Raster); ok {
			return r
		}
	}
	v, _ := globalCache.m.LoadOrStore(size, Render(size))
	return v.(*Raster)
}
