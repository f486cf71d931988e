package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"beer-reviews/config"
	"beer-reviews/models"
	"beer-reviews/utils"
)

// Loader reads delimited reference files and normalizes them per the schema.
type Loader struct {
	schema    *config.Schema
	delimiter rune
	logger    *utils.Logger
}

// NewLoader creates a Loader. A zero delimiter means comma.
func NewLoader(schema *config.Schema, delimiter rune, logger *utils.Logger) *Loader {
	if delimiter == 0 {
		delimiter = ','
	}
	return &Loader{schema: schema, delimiter: delimiter, logger: logger}
}

// LoadTable reads the named reference file, skips its provenance row when the
// schema declares one, disambiguates repeated header names with a ".N"
// suffix, keeps the allow-listed columns and renames them.
func (l *Loader) LoadTable(name string, r io.Reader) (models.Table, error) {
	ref, err := l.schema.Reference(name)
	if err != nil {
		return models.Table{}, err
	}

	cr := csv.NewReader(r)
	cr.Comma = l.delimiter
	records, err := cr.ReadAll()
	if err != nil {
		return models.Table{}, fmt.Errorf("%s: read: %w", name, err)
	}

	headerRow := 0
	if ref.ProvenanceRow {
		headerRow = 1
	}
	if len(records) <= headerRow {
		return models.Table{}, fmt.Errorf("%s: missing header row", name)
	}

	raw := models.Table{
		Columns: mangleDuplicates(records[headerRow]),
		Rows:    records[headerRow+1:],
	}
	selected, err := raw.Select(name, ref.AllowList())
	if err != nil {
		return models.Table{}, err
	}
	renamed, err := selected.Rename(name, ref.Columns)
	if err != nil {
		return models.Table{}, err
	}

	l.logger.Debug("[loader] %s: %d rows, %d of %d columns kept",
		name, renamed.Len(), len(renamed.Columns), len(raw.Columns))
	return renamed, nil
}

// mangleDuplicates renames the second and later occurrences of a header
// name to name.1, name.2, … so the per-platform blocks stay addressable.
func mangleDuplicates(header []string) []string {
	out := make([]string, len(header))
	counts := make(map[string]int, len(header))
	taken := make(map[string]struct{}, len(header))
	for _, h := range header {
		taken[h] = struct{}{}
	}
	for i, h := range header {
		n := counts[h]
		counts[h] = n + 1
		if n == 0 {
			out[i] = h
			continue
		}
		name := h + "." + strconv.Itoa(n)
		for {
			if _, clash := taken[name]; !clash {
				break
			}
			n++
			counts[h] = n + 1
			name = h + "." + strconv.Itoa(n)
		}
		taken[name] = struct{}{}
		out[i] = name
	}
	return out
}

// LoadBeers loads the matched beers file.
func (l *Loader) LoadBeers(r io.Reader) ([]models.Beer, error) {
	t, err := l.LoadTable(config.TableBeers, r)
	if err != nil {
		return nil, err
	}

	p := newRowParser(config.TableBeers, t)
	out := make([]models.Beer, t.Len())
	for i := range t.Rows {
		out[i] = models.Beer{
			BA: p.beer(i, models.SourceBA),
			RB: p.beer(i, models.SourceRB),
		}
		if p.err != nil {
			return nil, p.err
		}
	}
	l.logger.Info("[loader] Loaded %d beers", len(out))
	return out, nil
}

// LoadBreweries loads the matched breweries file.
func (l *Loader) LoadBreweries(r io.Reader) ([]models.Brewery, error) {
	t, err := l.LoadTable(config.TableBreweries, r)
	if err != nil {
		return nil, err
	}

	p := newRowParser(config.TableBreweries, t)
	out := make([]models.Brewery, t.Len())
	for i := range t.Rows {
		out[i] = models.Brewery{
			BA: p.brewery(i, models.SourceBA),
			RB: p.brewery(i, models.SourceRB),
		}
		if p.err != nil {
			return nil, p.err
		}
	}
	l.logger.Info("[loader] Loaded %d breweries", len(out))
	return out, nil
}

// LoadUsers loads one platform's users file as is, duplicates included.
func (l *Loader) LoadUsers(r io.Reader) ([]models.User, error) {
	t, err := l.LoadTable(config.TableUsers, r)
	if err != nil {
		return nil, err
	}

	p := newRowParser(config.TableUsers, t)
	out := make([]models.User, t.Len())
	for i := range t.Rows {
		out[i] = p.user(i, "")
		if p.err != nil {
			return nil, p.err
		}
	}
	l.logger.Info("[loader] Loaded %d users", len(out))
	return out, nil
}

// LoadMatchedUsers loads the cross-platform users file, keeping the first
// row for each BeerAdvocate user id.
func (l *Loader) LoadMatchedUsers(r io.Reader) ([]models.MatchedUser, error) {
	t, err := l.LoadTable(config.TableMatchedUsers, r)
	if err != nil {
		return nil, err
	}

	p := newRowParser(config.TableMatchedUsers, t)
	seen := utils.NewKeySet[string]()
	out := make([]models.MatchedUser, 0, t.Len())
	for i := range t.Rows {
		m := models.MatchedUser{
			BA: p.user(i, models.SourceBA.Suffix()),
			RB: p.user(i, models.SourceRB.Suffix()),
		}
		if p.err != nil {
			return nil, p.err
		}
		if seen.Add(m.BA.ID) {
			out = append(out, m)
		}
	}
	if dropped := t.Len() - len(out); dropped > 0 {
		l.logger.Warn("[loader] Dropped %d duplicate matched users", dropped)
	}
	l.logger.Info("[loader] Loaded %d matched users", len(out))
	return out, nil
}

// DedupUsers returns users with only the first row kept for each id, in
// file order. The input is not modified.
func DedupUsers(users []models.User) []models.User {
	seen := utils.NewKeySet[string]()
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if seen.Add(u.ID) {
			out = append(out, u)
		}
	}
	return out
}

// rowParser reads typed values out of a renamed reference table. The first
// failure is kept in err and later calls become no-ops.
type rowParser struct {
	table string
	t     models.Table
	col   map[string]int
	err   error
}

func newRowParser(table string, t models.Table) *rowParser {
	col := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		col[c] = i
	}
	return &rowParser{table: table, t: t, col: col}
}

func (p *rowParser) str(row int, column string) string {
	return strings.TrimSpace(p.t.Rows[row][p.col[column]])
}

func (p *rowParser) key(row int, column string) int64 {
	if p.err != nil {
		return 0
	}
	v := p.str(row, column)
	id, err := ParseKey(v)
	if err != nil {
		p.err = &models.KeyCoercionError{Table: p.table, Column: column, Row: row, Value: v}
	}
	return id
}

func (p *rowParser) count(row int, column string) int64 {
	if p.err != nil {
		return 0
	}
	v := p.str(row, column)
	if v == "" {
		return 0
	}
	n, err := ParseKey(v)
	if err != nil {
		p.err = fmt.Errorf("%s: row %d: column %q: invalid count %q", p.table, row, column, v)
	}
	return n
}

func (p *rowParser) float(row int, column string) float64 {
	if p.err != nil {
		return math.NaN()
	}
	v := p.str(row, column)
	if v == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.err = fmt.Errorf("%s: row %d: column %q: %w", p.table, row, column, err)
		return math.NaN()
	}
	return f
}

func (p *rowParser) beer(row int, src models.Source) models.PlatformBeer {
	s := src.Suffix()
	return models.PlatformBeer{
		ID:          p.key(row, models.ColBeerID+s),
		Name:        p.str(row, models.ColBeerName+s),
		BreweryID:   p.key(row, models.ColBreweryID+s),
		BreweryName: p.str(row, models.ColBreweryName+s),
		Style:       p.str(row, models.ColStyle+s),
		ABV:         p.float(row, models.ColABV+s),
		NbrRatings:  p.count(row, models.ColNbrRatings+s),
		Avg:         p.float(row, models.ColAvg+s),
	}
}

func (p *rowParser) brewery(row int, src models.Source) models.PlatformBrewery {
	s := src.Suffix()
	return models.PlatformBrewery{
		ID:       p.key(row, models.ColID+s),
		Location: p.str(row, models.ColLocation+s),
		Name:     p.str(row, models.ColName+s),
		NbrBeers: p.count(row, models.ColNbrBeers+s),
	}
}

func (p *rowParser) user(row int, suffix string) models.User {
	return models.User{
		ID:         NormaliseUserID(p.str(row, models.ColUserID+suffix)),
		Location:   p.str(row, models.ColLocation+suffix),
		NbrRatings: p.count(row, models.ColNbrRatings+suffix),
	}
}

// ParseKey coerces an identifier to an integer. Integral float spellings
// such as "1234.0", produced by tools that widen id columns holding gaps,
// are accepted.
func ParseKey(v string) (int64, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, fmt.Errorf("not an integral value: %q", v)
	}
	return int64(f), nil
}

// NormaliseUserID returns the text form of a user id used as a join key.
func NormaliseUserID(v string) string {
	return strings.TrimSpace(v)
}
