// Package scenario is the catalog of apocalypse scenarios the assessor
// knows about. The catalog is static configuration: ids, localized display
// names, and the localized question sets the client walks a player through.
package scenario

import "github.com/doomlabs/apocalypse-meter/internal/i18n"

// LocalizedText carries one string per supported locale.
type LocalizedText map[i18n.Locale]string

// Scenario describes one apocalypse scenario.
type Scenario struct {
	ID        string
	Name      LocalizedText
	Questions []LocalizedText
}

// View is the JSON projection of a scenario for one locale.
type View struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Questions []string `json:"questions"`
}

var catalog = []Scenario{
	{
		ID:   "zombie",
		Name: LocalizedText{i18n.LocaleEN: "Zombie Outbreak", i18n.LocaleZhTW: "殭屍爆發"},
		Questions: []LocalizedText{
			{i18n.LocaleEN: "What's your first move when you hear about the zombie outbreak?", i18n.LocaleZhTW: "當你聽到殭屍爆發的消息時，你的第一步是什麼？"},
			{i18n.LocaleEN: "What's your weapon of choice for the zombie apocalypse?", i18n.LocaleZhTW: "在殭屍末日中，你選擇的武器是什麼？"},
			{i18n.LocaleEN: "Where would you set up your base of operations?", i18n.LocaleZhTW: "你會在哪裡建立你的基地？"},
			{i18n.LocaleEN: "What special skill do you bring to a survivor group?", i18n.LocaleZhTW: "你能為倖存者團體帶來什麼特殊技能？"},
			{i18n.LocaleEN: "How would you handle encountering an infected loved one?", i18n.LocaleZhTW: "如果遇到被感染的親人，你會如何處理？"},
		},
	},
	{
		ID:   "alien",
		Name: LocalizedText{i18n.LocaleEN: "Alien Invasion", i18n.LocaleZhTW: "外星人入侵"},
		Questions: []LocalizedText{
			{i18n.LocaleEN: "How would you try to communicate with the aliens?", i18n.LocaleZhTW: "你會如何嘗試與外星人溝通？"},
			{i18n.LocaleEN: "What Earth technology would you use against them?", i18n.LocaleZhTW: "你會使用地球上的哪種科技對抗他們？"},
			{i18n.LocaleEN: "Where would you hide from their advanced detection systems?", i18n.LocaleZhTW: "你會在哪裡躲避他們先進的偵測系統？"},
			{i18n.LocaleEN: "How would you convince them humans are worth keeping around?", i18n.LocaleZhTW: "你會如何說服外星人人類值得保留？"},
			{i18n.LocaleEN: "What's your backup plan if negotiation fails?", i18n.LocaleZhTW: "如果談判失敗，你的備用計劃是什麼？"},
		},
	},
	{
		ID:   "ai-takeover",
		Name: LocalizedText{i18n.LocaleEN: "AI Takeover", i18n.LocaleZhTW: "AI 接管"},
		Questions: []LocalizedText{
			{i18n.LocaleEN: "What's your strategy for avoiding AI detection systems?", i18n.LocaleZhTW: "你避開AI偵測系統的策略是什麼？"},
			{i18n.LocaleEN: "How would you disable or hack into the AI network?", i18n.LocaleZhTW: "你會如何癱瘓或駭入AI網路？"},
			{i18n.LocaleEN: "Where would you find shelter from robot patrols?", i18n.LocaleZhTW: "你會在哪裡躲避機器人巡邏？"},
			{i18n.LocaleEN: "What analog tools would you rely on in a digital world?", i18n.LocaleZhTW: "在數位世界中，你會依賴什麼類比工具？"},
			{i18n.LocaleEN: "How would you organize human resistance against the machines?", i18n.LocaleZhTW: "你會如何組織人類對抗機器的抵抗？"},
		},
	},
	{
		ID:   "asteroid-impact",
		Name: LocalizedText{i18n.LocaleEN: "Asteroid Impact", i18n.LocaleZhTW: "小行星撞擊"},
		Questions: []LocalizedText{
			{i18n.LocaleEN: "Where would you go to survive the initial impact?", i18n.LocaleZhTW: "你會去哪裡躲避初期的撞擊？"},
			{i18n.LocaleEN: "What supplies would you stockpile for the nuclear winter?", i18n.LocaleZhTW: "你會為核子冬天囤積什麼物資？"},
			{i18n.LocaleEN: "How would you find or create breathable air?", i18n.LocaleZhTW: "你會如何找到或製造可呼吸的空氣？"},
			{i18n.LocaleEN: "What's your plan for finding food in the post-impact wasteland?", i18n.LocaleZhTW: "在撞擊後的荒地中尋找食物的計劃是什麼？"},
			{i18n.LocaleEN: "How would you stay warm during the endless winter?", i18n.LocaleZhTW: "在無盡的冬天中你會如何保暖？"},
		},
	},
}

// All returns every scenario projected for the given locale.
func All(locale i18n.Locale) []View {
	views := make([]View, 0, len(catalog))
	for _, s := range catalog {
		views = append(views, s.view(locale))
	}
	return views
}

// ByID returns the scenario with the given id, or false when unknown.
func ByID(id string) (Scenario, bool) {
	for _, s := range catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}

// DisplayName returns the localized display name for a scenario id.
// Unknown ids are returned verbatim so the prompt still reads sensibly.
func DisplayName(id string, locale i18n.Locale) string {
	s, ok := ByID(id)
	if !ok {
		return id
	}
	if name, ok := s.Name[locale]; ok {
		return name
	}
	return s.Name[i18n.DefaultLocale]
}

func (s Scenario) view(locale i18n.Locale) View {
	v := View{ID: s.ID, Questions: make([]string, 0, len(s.Questions))}
	v.Name = s.Name[locale]
	if v.Name == "" {
		v.Name = s.Name[i18n.DefaultLocale]
	}
	for _, q := range s.Questions {
		text, ok := q[locale]
		if !ok {
			text = q[i18n.DefaultLocale]
		}
		v.Questions = append(v.Questions, text)
	}
	return v
}
