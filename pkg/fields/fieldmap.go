package fields

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AbsentMark is the literal index marking a field as not present in an
// explicit field map, e.g. "F_TRACK:-".
const AbsentMark = "-"

var byName = func() map[string]Field {
	m := make(map[string]Field, NumFields)
	for i, n := range fnames {
		m[n] = Field(i)
	}
	return m
}()

func setPair(cm *ColumnMap, pair string) error {
	name, idx, ok := strings.Cut(strings.TrimSpace(pair), ":")
	if !ok {
		return fmt.Errorf("field map: malformed entry %q (want FIELD:index)", pair)
	}
	f, ok := byName[strings.TrimSpace(name)]
	if !ok {
		return fmt.Errorf("field map: unknown field name %q", strings.TrimSpace(name))
	}
	idx = strings.TrimSpace(idx)
	if idx == AbsentMark {
		cm[f] = Absent
		return nil
	}
	n, err := strconv.Atoi(idx)
	if err != nil || n < 0 {
		return fmt.Errorf("field map: bad column index %q for %s", idx, f)
	}
	cm[f] = n
	return nil
}

// ParseMap builds a ColumnMap from a comma-separated FIELD:index string.
func ParseMap(spec string) (ColumnMap, error) {
	cm := NewColumnMap()
	for _, pair := range strings.Split(spec, ",") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		if err := setPair(&cm, pair); err != nil {
			return cm, err
		}
	}
	return cm, validateMapped(cm)
}

// LoadMap reads a field map file, one FIELD:index pair per line. Blank lines
// and '#' comments are ignored.
func LoadMap(path string) (ColumnMap, error) {
	cm := NewColumnMap()
	fh, err := os.Open(path)
	if err != nil {
		return cm, fmt.Errorf("field map %s: %w", path, err)
	}
	defer fh.Close()

	sc := bufio.NewScanner(fh)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := setPair(&cm, line); err != nil {
			return cm, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := sc.Err(); err != nil {
		return cm, fmt.Errorf("field map %s: %w", path, err)
	}
	return cm, validateMapped(cm)
}

// An explicit map needs a time source and either a primary position or a
// base location (the latter serves the line and cone shapes).
func validateMapped(cm ColumnMap) error {
	if !cm.Has(F_FLIGHT_TIME) && !cm.Has(F_TICK) {
		return fmt.Errorf("field map: neither %s nor %s mapped", F_FLIGHT_TIME, F_TICK)
	}
	havePos := cm.Has(F_GPS_LONG) && cm.Has(F_GPS_LAT) && cm.Has(F_GPS_ALT)
	haveBase := cm.Has(F_BASE_LONG) && cm.Has(F_BASE_LAT)
	if !havePos && !haveBase {
		return fmt.Errorf("field map: no position columns mapped (%s/%s/%s or %s/%s)",
			F_GPS_LONG, F_GPS_LAT, F_GPS_ALT, F_BASE_LONG, F_BASE_LAT)
	}
	return nil
}
