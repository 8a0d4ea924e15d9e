package scales

// Collect folds all rows of src into a series. The schema is taken from the
// first row. The source is closed when Collect returns.
func Collect(src RowSource, f Folder) (Series, error) {
	return collect(src, f, nil)
}

// CollectSchema is like Collect, but uses a known schema instead of the first row's
func CollectSchema(src RowSource, f Folder, schema Schema) (Series, error) {
	return collect(src, f, &schema)
}

func collect(src RowSource, f Folder, schema *Schema) (Series, error) {
	defer src.Close()

	series := Series{Readings: []Point{}}

	var readings []Reading
	first := true

	for src.Next() {
		row := src.Row()

		if first {
			if schema == nil {
				s := SchemaFromRow(row)
				schema = &s
			}
			f.Bind(schema.Len())
			readings = make([]Reading, schema.Len())
			series.TimePeriod = TimePeriod{
				Start: unixSeconds(row.Start),
				Stop:  unixSeconds(row.Stop),
			}
			first = false
		}

		if err := schema.Align(row, readings); err != nil {
			return Series{}, err
		}

		p := Point{
			Timestamp: unixSeconds(row.Time),
			Keys:      schema.Keys(),
			Values:    make([]float64, schema.Len()),
		}
		f.Fold(readings, p.Values)
		series.Readings = append(series.Readings, p)
	}

	if err := src.Err(); err != nil {
		return Series{}, err
	}

	return series, nil
}
