package geokdnn

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// LoadRecords zips three parallel input streams (one age per line, one
// name per line, two comma-separated coordinates per line) into records
// with id = strconv.Itoa(index). File paths and multiprocessing concerns
// belong to the caller generating those streams, not here.
func LoadRecords(ages, names, coords io.Reader) ([]Record, error) {
	ageValues, err := scanInts(ages)
	if err != nil {
		return nil, err
	}
	nameValues, err := scanLines(names)
	if err != nil {
		return nil, err
	}
	coordValues, err := scanCoords(coords)
	if err != nil {
		return nil, err
	}

	n := len(ageValues)
	if len(nameValues) != n || len(coordValues) != n {
		return nil, invalidInputf(
			"mismatched stream lengths: ages=%d names=%d coords=%d", n, len(nameValues), len(coordValues))
	}

	records := make([]Record, n)
	for i := 0; i < n; i++ {
		records[i] = Record{
			ID:        strconv.Itoa(i),
			Age:       ageValues[i],
			Name:      nameValues[i],
			Latitude:  coordValues[i][0],
			Longitude: coordValues[i][1],
		}
	}
	return records, nil
}

func scanLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func scanInts(r io.Reader) ([]int, error) {
	lines, err := scanLines(r)
	if err != nil {
		return nil, err
	}
	values := make([]int, len(lines))
	for i, line := range lines {
		v, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			return nil, invalidInputf("age line %d: %v", i, err)
		}
		values[i] = v
	}
	return values, nil
}

func scanCoords(r io.Reader) ([][2]float64, error) {
	lines, err := scanLines(r)
	if err != nil {
		return nil, err
	}
	values := make([][2]float64, len(lines))
	for i, line := range lines {
		parts := strings.SplitN(line, ",", 2)
		if len(parts) != 2 {
			return nil, invalidInputf("coordinate line %d: expected \"lat,lon\", got %q", i, line)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, invalidInputf("coordinate line %d latitude: %v", i, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, invalidInputf("coordinate line %d longitude: %v", i, err)
		}
		values[i] = [2]float64{lat, lon}
	}
	return values, nil
}
