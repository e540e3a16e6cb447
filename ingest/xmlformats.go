package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// findItems returns every descendant of root whose tag matches itemTag,
// searching the whole tree (RSS/KML/GML all nest their repeating unit a
// different number of levels deep).
func findItems(root *etree.Element, itemTag string) []*etree.Element {
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		if e.Tag == itemTag {
			out = append(out, e)
			return
		}
		for _, c := range e.ChildElements() {
			walk(c)
		}
	}
	for _, c := range root.ChildElements() {
		walk(c)
	}
	return out
}

// extractXMLRows implements the shared "XML child-name-driven row
// extraction (first item defines columns)" rule from spec §4.F: the first
// matched item's direct child element names become the header, and each
// item contributes one row of those children's text content (missing
// children yield an empty cell).
func extractXMLRows(items []*etree.Element) [][]string {
	if len(items) == 0 {
		return nil
	}
	var header []string
	for _, c := range items[0].ChildElements() {
		header = append(header, c.Tag)
	}

	rows := [][]string{header}
	for _, item := range items {
		rec := make([]string, len(header))
		for i, tag := range header {
			if el := item.SelectElement(tag); el != nil {
				rec[i] = el.Text()
			}
		}
		rows = append(rows, rec)
	}
	return rows
}

// ParseRSS extracts one row per <item> under an RSS <channel>, columns
// named after the first item's child elements (title, link, description,
// pubDate, ...), per spec §4.F.
func ParseRSS(data []byte) ([][]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("ingest: rss parse failure: %w", err)
	}
	items := findItems(doc.Root(), "item")
	if len(items) == 0 {
		return nil, fmt.Errorf("ingest: rss document has no items")
	}
	return extractXMLRows(items), nil
}

// ParseKML extracts one row per <Placemark>. Non-geometry children become
// columns named after their tag; the Placemark's <Point><coordinates>
// (lon,lat[,alt]) is decoded into a GeoJSON Point string stored under the
// "KML.Point" column, per spec §3's geometry-column-naming convention.
func ParseKML(data []byte) ([][]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("ingest: kml parse failure: %w", err)
	}
	items := findItems(doc.Root(), "Placemark")
	if len(items) == 0 {
		return nil, fmt.Errorf("ingest: kml document has no placemarks")
	}

	var header []string
	for _, c := range items[0].ChildElements() {
		if c.Tag == "Point" {
			continue
		}
		header = append(header, c.Tag)
	}
	header = append(header, "KML.Point")

	rows := [][]string{header}
	for _, item := range items {
		rec := make([]string, len(header))
		for i, tag := range header[:len(header)-1] {
			if el := item.SelectElement(tag); el != nil {
				rec[i] = el.Text()
			}
		}
		rec[len(header)-1] = kmlPointGeoJSON(item)
		rows = append(rows, rec)
	}
	return rows, nil
}

func kmlPointGeoJSON(placemark *etree.Element) string {
	point := placemark.SelectElement("Point")
	if point == nil {
		return ""
	}
	coords := point.SelectElement("coordinates")
	if coords == nil {
		return ""
	}
	parts := strings.Split(strings.TrimSpace(coords.Text()), ",")
	if len(parts) < 2 {
		return ""
	}
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLon != nil || errLat != nil {
		return ""
	}
	return fmt.Sprintf(`{"type":"Point","coordinates":[%s,%s]}`,
		strconv.FormatFloat(lon, 'f', -1, 64), strconv.FormatFloat(lat, 'f', -1, 64))
}

var gmlCoordPair = regexp.MustCompile(`[-+]?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?`)

// ParseGML extracts one row per <featureMember>. Non-geometry children
// become columns; <Polygon> coordinate text (whitespace/comma-separated
// lat,lon pairs per GML convention) is hand-parsed and byte-swapped to
// (lon, lat) GeoJSON order, stored under the "GML.Geometry" column (spec
// §4.F, §3).
func ParseGML(data []byte) ([][]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("ingest: gml parse failure: %w", err)
	}
	items := findItems(doc.Root(), "featureMember")
	if len(items) == 0 {
		return nil, fmt.Errorf("ingest: gml document has no featureMember elements")
	}

	var header []string
	first := gmlFeature(items[0])
	if first != nil {
		for _, c := range first.ChildElements() {
			if c.Tag == "Polygon" || c.SelectElement("Polygon") != nil {
				continue
			}
			header = append(header, c.Tag)
		}
	}
	header = append(header, "GML.Geometry")

	rows := [][]string{header}
	for _, item := range items {
		feat := gmlFeature(item)
		rec := make([]string, len(header))
		if feat != nil {
			for i, tag := range header[:len(header)-1] {
				if el := feat.SelectElement(tag); el != nil {
					rec[i] = el.Text()
				}
			}
		}
		rec[len(header)-1] = gmlPolygonGeoJSON(item)
		rows = append(rows, rec)
	}
	return rows, nil
}

// gmlFeature returns the single child element wrapped by a featureMember,
// or nil.
func gmlFeature(featureMember *etree.Element) *etree.Element {
	children := featureMember.ChildElements()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// gmlPolygonGeoJSON hand-parses the first <Polygon>'s coordinate text found
// anywhere under featureMember: GML coordinate lists are a flat
// whitespace/comma-separated sequence of numbers in (lat, lon) order by the
// convention this ingests from; spec §4.F requires swapping to GeoJSON's
// (lon, lat) order.
func gmlPolygonGeoJSON(featureMember *etree.Element) string {
	var polygon *etree.Element
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		if polygon != nil {
			return
		}
		if e.Tag == "Polygon" {
			polygon = e
			return
		}
		for _, c := range e.ChildElements() {
			walk(c)
		}
	}
	walk(featureMember)
	if polygon == nil {
		return ""
	}

	var coordText string
	var findCoords func(*etree.Element)
	findCoords = func(e *etree.Element) {
		if coordText != "" {
			return
		}
		if e.Tag == "coordinates" {
			coordText = e.Text()
			return
		}
		for _, c := range e.ChildElements() {
			findCoords(c)
		}
	}
	findCoords(polygon)
	if coordText == "" {
		return ""
	}

	nums := gmlCoordPair.FindAllString(coordText, -1)
	if len(nums) < 2 || len(nums)%2 != 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`{"type":"Polygon","coordinates":[[`)
	for i := 0; i < len(nums); i += 2 {
		lat, errA := strconv.ParseFloat(nums[i], 64)
		lon, errB := strconv.ParseFloat(nums[i+1], 64)
		if errA != nil || errB != nil {
			continue
		}
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("[")
		b.WriteString(strconv.FormatFloat(lon, 'f', -1, 64))
		b.WriteString(",")
		b.WriteString(strconv.FormatFloat(lat, 'f', -1, 64))
		b.WriteString("]")
	}
	b.WriteString(`]]}`)
	return b.String()
}
