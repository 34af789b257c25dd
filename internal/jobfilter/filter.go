// Package jobfilter は求人一覧の絞り込みとページングの状態を提供する。
// 取得済みの求人スライスに対するメモリ内の純粋な操作であり、
// ストレージへの問い合わせは行わない。
package jobfilter

import (
	"strings"

	"github.com/hitoshi/jobport/internal/model"
)

// PageSize は1ページあたりの求人件数。
const PageSize = 6

// State は絞り込み条件と現在ページを保持する。
// カテゴリとロケーションの選択は独立した集合で管理し、
// 片方の切替がもう片方に影響することはない。
type State struct {
	jobs []model.JobWithCompany

	categories map[string]bool
	locations  map[string]bool

	titleQuery    string
	locationQuery string

	page int
}

// NewState は求人スライスからStateを生成する。初期状態は絞り込みなしの1ページ目。
func NewState(jobs []model.JobWithCompany) *State {
	return &State{
		jobs:       jobs,
		categories: make(map[string]bool),
		locations:  make(map[string]bool),
		page:       1,
	}
}

// ToggleCategory はカテゴリ選択を切り替える。
func (s *State) ToggleCategory(category string) {
	if s.categories[category] {
		delete(s.categories, category)
	} else {
		s.categories[category] = true
	}
	s.page = 1
}

// ToggleLocation はロケーション選択を切り替える。
func (s *State) ToggleLocation(location string) {
	if s.locations[location] {
		delete(s.locations, location)
	} else {
		s.locations[location] = true
	}
	s.page = 1
}

// SetTitleQuery はタイトルの部分一致検索語を設定する。
func (s *State) SetTitleQuery(q string) {
	s.titleQuery = q
	s.page = 1
}

// SetLocationQuery はロケーションの部分一致検索語を設定する。
func (s *State) SetLocationQuery(q string) {
	s.locationQuery = q
	s.page = 1
}

// ClearFilters は全ての絞り込み条件を解除する。
func (s *State) ClearFilters() {
	s.categories = make(map[string]bool)
	s.locations = make(map[string]bool)
	s.titleQuery = ""
	s.locationQuery = ""
	s.page = 1
}

// SetPage は現在ページを設定する。範囲外の値は最も近い有効ページに丸める。
func (s *State) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	if max := s.PageCount(); page > max {
		page = max
	}
	s.page = page
}

// CurrentPage は現在のページ番号を返す。
func (s *State) CurrentPage() int {
	return s.page
}

// matches は1件の求人が現在の条件を全て満たすかを返す。
// 各条件はANDで結合し、未設定の条件は常に満たすとみなす。
// 文字列照合は大文字小文字を区別しない部分一致。
func (s *State) matches(job model.JobWithCompany) bool {
	if len(s.categories) > 0 && !s.categories[job.Category] {
		return false
	}
	if len(s.locations) > 0 && !s.locations[job.Location] {
		return false
	}
	if s.titleQuery != "" &&
		!strings.Contains(strings.ToLower(job.Title), strings.ToLower(s.titleQuery)) {
		return false
	}
	if s.locationQuery != "" &&
		!strings.Contains(strings.ToLower(job.Location), strings.ToLower(s.locationQuery)) {
		return false
	}
	return true
}

// Filtered は現在の条件を満たす全求人を元の順序のまま返す。
func (s *State) Filtered() []model.JobWithCompany {
	result := make([]model.JobWithCompany, 0, len(s.jobs))
	for _, job := range s.jobs {
		if s.matches(job) {
			result = append(result, job)
		}
	}
	return result
}

// PageCount は絞り込み結果の総ページ数を返す。結果が空でも1を返す。
func (s *State) PageCount() int {
	n := len(s.Filtered())
	if n == 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

// Page は現在ページに表示する求人を返す。
// 最終ページは残りの件数分だけ返す。
func (s *State) Page() []model.JobWithCompany {
	filtered := s.Filtered()

	start := (s.page - 1) * PageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}
