// Package geo resuelve bairros a coordenadas con una tabla estática versionada.
package geo

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed neighborhoods.yaml
var defaultTable []byte

type Neighborhood struct {
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lng  float64 `yaml:"lng"`
}

type tableFile struct {
	Version       int            `yaml:"version"`
	City          string         `yaml:"city"`
	Neighborhoods []Neighborhood `yaml:"neighborhoods"`
}

// Table es inmutable después de construida; se comparte entre requests.
type Table struct {
	version int
	city    string
	items   []Neighborhood
	byKey   map[string]int
}

// Default devuelve la tabla embebida en el binario.
func Default() (*Table, error) {
	return Parse(defaultTable)
}

// Load lee la tabla desde path; path vacío = tabla embebida.
func Load(path string) (*Table, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read geo table: %w", err)
	}
	return Parse(b)
}

func Parse(b []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse geo table: %w", err)
	}
	if len(f.Neighborhoods) == 0 {
		return nil, errors.New("geo table has no neighborhoods")
	}

	t := &Table{
		version: f.Version,
		city:    strings.TrimSpace(f.City),
		items:   make([]Neighborhood, 0, len(f.Neighborhoods)),
		byKey:   make(map[string]int, len(f.Neighborhoods)),
	}
	for _, n := range f.Neighborhoods {
		n.Name = strings.TrimSpace(n.Name)
		if n.Name == "" {
			return nil, errors.New("geo table has an unnamed neighborhood")
		}
		if n.Lat < -90 || n.Lat > 90 || n.Lng < -180 || n.Lng > 180 {
			return nil, fmt.Errorf("geo table: %q has out of range coordinates", n.Name)
		}
		k := key(n.Name)
		if _, dup := t.byKey[k]; dup {
			return nil, fmt.Errorf("geo table: duplicated neighborhood %q", n.Name)
		}
		t.byKey[k] = len(t.items)
		t.items = append(t.items, n)
	}
	return t, nil
}

func (t *Table) Version() int { return t.version }
func (t *Table) City() string { return t.city }

// Lookup ignora mayúsculas y espacios alrededor.
func (t *Table) Lookup(name string) (Neighborhood, bool) {
	i, ok := t.byKey[key(name)]
	if !ok {
		return Neighborhood{}, false
	}
	return t.items[i], true
}

// Resolve: coordenadas explícitas (ambas) ganan; si no, busca el bairro.
// Bairro desconocido => (nil, nil), el anuncio se crea sin pin.
func (t *Table) Resolve(neighborhood string, lat, lng *float64) (*float64, *float64) {
	if lat != nil && lng != nil {
		la, ln := *lat, *lng
		return &la, &ln
	}
	n, ok := t.Lookup(neighborhood)
	if !ok {
		return nil, nil
	}
	la, ln := n.Lat, n.Lng
	return &la, &ln
}

// Nearest usa distancia euclídea en grados (aproximación aceptable a escala de
// ciudad). En empate gana el primero de la tabla.
func (t *Table) Nearest(lat, lng float64) Neighborhood {
	best := t.items[0]
	bestDist := sqDist(best, lat, lng)
	for _, n := range t.items[1:] {
		if d := sqDist(n, lat, lng); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

func (t *Table) Names() []string {
	out := make([]string, 0, len(t.items))
	for _, n := range t.items {
		out = append(out, n.Name)
	}
	return out
}

func (t *Table) Address(name string) string {
	if t.city == "" {
		return name
	}
	return name + ", " + t.city
}

func sqDist(n Neighborhood, lat, lng float64) float64 {
	dLat, dLng := n.Lat-lat, n.Lng-lng
	return dLat*dLat + dLng*dLng
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
