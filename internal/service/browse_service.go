package service

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-marks-api/internal/dto"
	"github.com/noah-isme/exam-marks-api/internal/models"
)

const (
	// BrowsePageSize is the admin list page size.
	BrowsePageSize = 10
	maxBrowsePage  = 100

	unknownClass = "Unknown"
	// classes without a positive leading number sort after every numbered class
	unnumberedClassRank = 999
)

var arabicToRoman = map[string]string{
	"1": "I", "2": "II", "3": "III", "4": "IV", "5": "V", "6": "VI",
	"7": "VII", "8": "VIII", "9": "IX", "10": "X", "11": "XI", "12": "XII",
}

var romanToArabic = func() map[string]string {
	out := make(map[string]string, len(arabicToRoman))
	for arabic, roman := range arabicToRoman {
		out[roman] = arabic
	}
	return out
}()

// splitClass separates the leading digits of a class name from its suffix.
func splitClass(className string) (string, string) {
	i := 0
	for i < len(className) && className[i] >= '0' && className[i] <= '9' {
		i++
	}
	return className[:i], className[i:]
}

// ToRomanClass renders "10A" as "XA". Numbers outside 1-12 and names without
// a leading number are returned unchanged.
func ToRomanClass(className string) string {
	num, suffix := splitClass(className)
	if num == "" {
		return className
	}
	if roman, ok := arabicToRoman[num]; ok {
		return roman + suffix
	}
	return className
}

// ClassMatches reports whether a stored class satisfies the admin filter.
func ClassMatches(className, filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return true
	}
	lowerClass := strings.ToLower(className)
	if strings.Contains(lowerClass, strings.ToLower(filter)) {
		return true
	}
	upper := strings.ToUpper(filter)
	if arabic, ok := romanToArabic[upper]; ok {
		return strings.Contains(lowerClass, arabic)
	}
	return strings.Contains(strings.ToUpper(ToRomanClass(className)), upper)
}

func classRank(className string) int {
	num, _ := splitClass(strings.TrimSpace(className))
	n, err := strconv.Atoi(num)
	if err != nil || n <= 0 {
		return unnumberedClassRank
	}
	return n
}

type markLister interface {
	ListAllMarks(ctx context.Context) ([]models.StudentMark, error)
}

// BrowseService serves the admin list and class grouping views.
type BrowseService struct {
	marks  markLister
	logger *zap.Logger
}

// NewBrowseService constructs a BrowseService.
func NewBrowseService(marks markLister, logger *zap.Logger) *BrowseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrowseService{marks: marks, logger: logger}
}

func (s *BrowseService) filtered(ctx context.Context, class string) ([]dto.MarkListItem, error) {
	marks, err := s.marks.ListAllMarks(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MarkListItem, 0, len(marks))
	for _, mark := range marks {
		if !ClassMatches(mark.ClassName, class) {
			continue
		}
		items = append(items, dto.MarkListItem{
			StudentMark: mark,
			ClassLabel:  ToRomanClass(mark.ClassName),
			Summary:     Summarize(mark.Subjects),
		})
	}
	s.logger.Debug("browse filter applied", zap.String("class", class), zap.Int("matched", len(items)), zap.Int("total", len(marks)))
	return items, nil
}

// Browse returns one page of records matching the class filter.
func (s *BrowseService) Browse(ctx context.Context, filter dto.BrowseFilter) ([]dto.MarkListItem, *models.Pagination, error) {
	items, err := s.filtered(ctx, filter.Class)
	if err != nil {
		return nil, nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > maxBrowsePage {
		size = BrowsePageSize
	}
	total := len(items)
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total, TotalPages: (total + size - 1) / size}

	start := (page - 1) * size
	if start >= total {
		return []dto.MarkListItem{}, pagination, nil
	}
	end := start + size
	if end > total {
		end = total
	}
	return items[start:end], pagination, nil
}

// Groups buckets matching records by class, numbered classes first.
func (s *BrowseService) Groups(ctx context.Context, class string) ([]dto.ClassGroup, error) {
	items, err := s.filtered(ctx, class)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	groups := make([]dto.ClassGroup, 0)
	for _, item := range items {
		key := strings.TrimSpace(item.ClassName)
		if key == "" {
			key = unknownClass
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, dto.ClassGroup{ClassName: key, ClassLabel: ToRomanClass(key)})
		}
		groups[i].Records = append(groups[i].Records, item)
		groups[i].Count++
		if item.Summary.Passed {
			groups[i].PassedCount++
		}
	}

	sort.SliceStable(groups, func(a, b int) bool {
		ra, rb := classRank(groups[a].ClassName), classRank(groups[b].ClassName)
		if ra != rb {
			return ra < rb
		}
		return groups[a].ClassName < groups[b].ClassName
	})
	return groups, nil
}
