// Package catalog 维护赛项标识（slug）到名单表的静态映射。
// 映射在进程启动时构建一次，之后只读。
package catalog

import (
	"sort"

	apperrors "vtufest/backend/pkg/errors"
)

// Category 赛项大类
type Category string

const (
	CategoryStage    Category = "stage"
	CategoryLiterary Category = "literary"
	CategoryFineArts Category = "fine_arts"
	CategoryMusic    Category = "music"
	CategoryDance    Category = "dance"
)

// ErrUnknownEvent slug 缺失或不在目录中
var ErrUnknownEvent = apperrors.Validation("Invalid or missing event_slug")

// Event 目录中的一个赛项
type Event struct {
	Slug     string
	Table    string
	Name     string
	Category Category
}

// Catalog slug → 赛项
type Catalog struct {
	bySlug map[string]Event
	order  []string
}

var defaultEvents = []Event{
	{"mime", "event_mime", "Mime", CategoryStage},
	{"mimicry", "event_mimicry", "Mimicry", CategoryStage},
	{"one_act_play", "event_one_act_play", "One Act Play", CategoryStage},
	{"skits", "event_skits", "Skits", CategoryStage},

	{"debate", "event_debate", "Debate", CategoryLiterary},
	{"elocution", "event_elocution", "Elocution", CategoryLiterary},
	{"quiz", "event_quiz", "Quiz", CategoryLiterary},

	{"cartooning", "event_cartooning", "Cartooning", CategoryFineArts},
	{"clay_modelling", "event_clay_modelling", "Clay Modelling", CategoryFineArts},
	{"collage_making", "event_collage_making", "Collage Making", CategoryFineArts},
	{"installation", "event_installation", "Installation", CategoryFineArts},
	{"on_spot_painting", "event_on_spot_painting", "On Spot Painting", CategoryFineArts},
	{"poster_making", "event_poster_making", "Poster Making", CategoryFineArts},
	{"rangoli", "event_rangoli", "Rangoli", CategoryFineArts},
	{"spot_photography", "event_spot_photography", "Spot Photography", CategoryFineArts},

	{"classical_vocal_solo", "event_classical_vocal_solo", "Classical Vocal Solo", CategoryMusic},
	{"classical_instrumental_percussion", "event_classical_instr_percussion", "Classical Instrumental Solo (Percussion)", CategoryMusic},
	{"classical_instrumental_non_percussion", "event_classical_instr_non_percussion", "Classical Instrumental Solo (Non-Percussion)", CategoryMusic},
	{"light_vocal_solo", "event_light_vocal_solo", "Light Vocal Solo", CategoryMusic},
	{"western_vocal_solo", "event_western_vocal_solo", "Western Vocal Solo", CategoryMusic},
	{"group_song_indian", "event_group_song_indian", "Group Song (Indian)", CategoryMusic},
	{"group_song_western", "event_group_song_western", "Group Song (Western)", CategoryMusic},
	{"folk_orchestra", "event_folk_orchestra", "Folk Orchestra", CategoryMusic},

	{"folk_tribal_dance", "event_folk_dance", "Folk / Tribal Dance", CategoryDance},
	{"classical_dance_solo", "event_classical_dance_solo", "Classical Dance Solo", CategoryDance},
}

// New 由赛项列表构建目录，后出现的重复 slug 被忽略
func New(events []Event) *Catalog {
	c := &Catalog{bySlug: make(map[string]Event, len(events))}
	for _, e := range events {
		if _, dup := c.bySlug[e.Slug]; dup {
			continue
		}
		c.bySlug[e.Slug] = e
		c.order = append(c.order, e.Slug)
	}
	return c
}

// Default 固定的 25 个赛项
func Default() *Catalog {
	return New(defaultEvents)
}

// Resolve 查找赛项；未知或空 slug 返回 ErrUnknownEvent
func (c *Catalog) Resolve(slug string) (Event, error) {
	e, ok := c.bySlug[slug]
	if !ok {
		return Event{}, ErrUnknownEvent
	}
	return e, nil
}

// Lookup 按 slug 查找，不返回错误
func (c *Catalog) Lookup(slug string) (Event, bool) {
	e, ok := c.bySlug[slug]
	return e, ok
}

// Events 按定义顺序返回全部赛项
func (c *Catalog) Events() []Event {
	out := make([]Event, 0, len(c.order))
	for _, slug := range c.order {
		out = append(out, c.bySlug[slug])
	}
	return out
}

// Tables 全部名单表名（排序后），供建表与测试使用
func (c *Catalog) Tables() []string {
	out := make([]string, 0, len(c.bySlug))
	for _, e := range c.bySlug {
		out = append(out, e.Table)
	}
	sort.Strings(out)
	return out
}

// Len 赛项数量
func (c *Catalog) Len() int { return len(c.order) }
