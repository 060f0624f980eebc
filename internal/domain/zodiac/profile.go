package zodiac

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yanqian/astromaster/internal/domain/locale"
)

// Profile is the static reference data shown for a sign.
type Profile struct {
	Sign        Sign     `json:"sign"`
	Name        string   `json:"name"`
	NameEn      string   `json:"nameEn"`
	DateRange   string   `json:"dateRange"`
	Start       string   `json:"start,omitempty"`
	End         string   `json:"end,omitempty"`
	Element     string   `json:"element"`
	Ruling      string   `json:"ruling"`
	Traits      []string `json:"traits"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Likes       []string `json:"likes"`
	Dislikes    []string `json:"dislikes"`
	Description string   `json:"description"`
}

type profileText struct {
	element     string
	ruling      string
	traits      []string
	strengths   []string
	weaknesses  []string
	likes       []string
	dislikes    []string
	description string
}

// Describe returns the profile of s in lang. Unknown signs yield a placeholder
// profile with empty lists. The returned value owns its slices.
func Describe(s Sign, lang locale.Language) Profile {
	lang = lang.OrDefault()
	if !s.Valid() {
		p := Profile{Sign: Unknown, Name: s.Name(lang), NameEn: s.EnglishName()}
		p.Traits, p.Strengths, p.Weaknesses, p.Likes, p.Dislikes = []string{}, []string{}, []string{}, []string{}, []string{}
		if lang == locale.English {
			p.Description = "Unrecognised zodiac sign"
		} else {
			p.Description = "未能识别的星座"
		}
		return p
	}

	text := profilesZh[s-1]
	if lang == locale.English {
		text = profilesEn[s-1]
	}
	start, end, _ := Bounds(s)
	return Profile{
		Sign:        s,
		Name:        s.Name(lang),
		NameEn:      s.EnglishName(),
		DateRange:   formatRange(start, end, lang),
		Start:       start,
		End:         end,
		Element:     text.element,
		Ruling:      text.ruling,
		Traits:      slices.Clone(text.traits),
		Strengths:   slices.Clone(text.strengths),
		Weaknesses:  slices.Clone(text.weaknesses),
		Likes:       slices.Clone(text.likes),
		Dislikes:    slices.Clone(text.dislikes),
		Description: text.description,
	}
}

var monthAbbrev = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func formatRange(start, end string, lang locale.Language) string {
	return fmt.Sprintf("%s - %s", formatMonthDay(start, lang), formatMonthDay(end, lang))
}

func formatMonthDay(md string, lang locale.Language) string {
	monthRaw, dayRaw, ok := strings.Cut(md, "-")
	if !ok {
		return md
	}
	month, err := strconv.Atoi(monthRaw)
	if err != nil || month < 1 || month > 12 {
		return md
	}
	day, err := strconv.Atoi(dayRaw)
	if err != nil {
		return md
	}
	if lang == locale.English {
		return fmt.Sprintf("%s %d", monthAbbrev[month-1], day)
	}
	return fmt.Sprintf("%d月%d日", month, day)
}

var profilesZh = [signCount]profileText{
	{
		element:     "火象",
		ruling:      "火星",
		traits:      []string{"勇敢", "自信", "热情", "冲动"},
		strengths:   []string{"勇气", "决断力", "自信", "乐观"},
		weaknesses:  []string{"急躁", "冲动", "自我中心", "好斗"},
		likes:       []string{"挑战", "领导", "体育活动", "个人成就"},
		dislikes:    []string{"等待", "承认失败", "被忽视", "细节工作"},
		description: "白羊座是黄道十二宫的第一个星座，象征着新的开始。白羊座的人通常充满活力、热情和冒险精神，喜欢挑战和竞争。他们直率、坦诚，有时会显得有些鲁莽和冲动。白羊座的人通常有很强的领导能力，但也可能因为急躁而忽略细节。",
	},
	{
		element:     "土象",
		ruling:      "金星",
		traits:      []string{"稳重", "实际", "可靠", "固执"},
		strengths:   []string{"可靠", "耐心", "实用", "奉献"},
		weaknesses:  []string{"固执", "占有欲", "物质主义", "抗拒变化"},
		likes:       []string{"园艺", "烹饪", "音乐", "浪漫"},
		dislikes:    []string{"突然变化", "复杂性", "不安全感", "人为合成物"},
		description: "金牛座是黄道十二宫的第二个星座，以其稳定性和可靠性而闻名。金牛座的人通常非常务实、耐心和可靠，他们喜欢安全感和舒适。金牛座的人对美食、艺术和自然有着深厚的欣赏能力，但也可能显得固执和抗拒变化。",
	},
	{
		element:     "风象",
		ruling:      "水星",
		traits:      []string{"好奇", "适应性强", "灵活", "交际"},
		strengths:   []string{"沟通能力", "适应性", "学习能力", "多才多艺"},
		weaknesses:  []string{"优柔寡断", "紧张", "不一致", "肤浅"},
		likes:       []string{"交谈", "阅读", "学习新事物", "自由"},
		dislikes:    []string{"孤独", "限制", "重复", "常规"},
		description: "双子座是黄道十二宫的第三个星座，以其多变性和沟通能力而著称。双子座的人通常聪明、好奇心强，喜欢学习新事物和与人交流。他们思维敏捷，适应性强，但有时可能显得优柔寡断或肤浅。",
	},
	{
		element:     "水象",
		ruling:      "月亮",
		traits:      []string{"情感丰富", "直觉", "保护", "敏感"},
		strengths:   []string{"情感丰富", "忠诚", "保护", "同情心"},
		weaknesses:  []string{"情绪化", "多愁善感", "过度保护", "记仇"},
		likes:       []string{"家庭", "安全感", "传统", "水"},
		dislikes:    []string{"陌生人", "批评", "暴露隐私", "冷漠"},
		description: "巨蟹座是黄道十二宫的第四个星座，以其情感丰富和保护性而闻名。巨蟹座的人通常非常关心家庭和亲人，有很强的直觉和同情心。他们重视安全感和稳定性，但有时可能过于情绪化或多愁善感。",
	},
	{
		element:     "火象",
		ruling:      "太阳",
		traits:      []string{"自信", "慷慨", "忠诚", "戏剧性"},
		strengths:   []string{"创造力", "慷慨", "温暖", "幽默"},
		weaknesses:  []string{"自负", "固执", "懒惰", "不灵活"},
		likes:       []string{"戏剧", "休闲", "昂贵的东西", "明亮的颜色"},
		dislikes:    []string{"被忽视", "面对现实", "不被欣赏", "困难"},
		description: "狮子座是黄道十二宫的第五个星座，以其自信和领导能力而著称。狮子座的人通常热情、慷慨、忠诚，喜欢成为关注的焦点。他们有很强的创造力和表现力，但有时可能显得自负或固执。",
	},
	{
		element:     "土象",
		ruling:      "水星",
		traits:      []string{"分析", "实际", "勤奋", "批判"},
		strengths:   []string{"分析能力", "勤奋", "实用", "可靠"},
		weaknesses:  []string{"挑剔", "过度担忧", "完美主义", "过度批判"},
		likes:       []string{"动物", "健康食品", "书籍", "自然"},
		dislikes:    []string{"粗鲁", "寻求帮助", "成为关注焦点", "混乱"},
		description: "处女座是黄道十二宫的第六个星座，以其分析能力和实际性而闻名。处女座的人通常非常勤奋、细心和有条理，注重细节和完美。他们有很强的分析能力和批判性思维，但有时可能过于挑剔或担忧。",
	},
	{
		element:     "风象",
		ruling:      "金星",
		traits:      []string{"平衡", "和谐", "公正", "社交"},
		strengths:   []string{"外交", "公平", "社交能力", "合作"},
		weaknesses:  []string{"优柔寡断", "逃避冲突", "怨恨", "自怜"},
		likes:       []string{"和谐", "分享", "户外活动", "艺术"},
		dislikes:    []string{"暴力", "不公", "粗鲁", "一致性"},
		description: "天秤座是黄道十二宫的第七个星座，以其平衡感和公正性而著称。天秤座的人通常追求和谐与平衡，有很强的社交能力和外交才能。他们欣赏美丽和艺术，但有时可能显得优柔寡断或逃避冲突。",
	},
	{
		element:     "水象",
		ruling:      "冥王星",
		traits:      []string{"热情", "坚定", "神秘", "强烈"},
		strengths:   []string{"决心", "勇气", "忠诚", "洞察力"},
		weaknesses:  []string{"嫉妒", "固执", "操控", "怀疑"},
		likes:       []string{"真相", "事实", "目标", "伟大的梦想"},
		dislikes:    []string{"虚假", "被动", "谎言", "肤浅"},
		description: "天蝎座是黄道十二宫的第八个星座，以其强烈的情感和神秘感而闻名。天蝎座的人通常非常热情、坚定和有洞察力，他们追求真相和深度。天蝎座的人有很强的决心和忠诚度，但有时可能显得嫉妒或固执。",
	},
	{
		element:     "火象",
		ruling:      "木星",
		traits:      []string{"乐观", "自由", "哲学", "直率"},
		strengths:   []string{"慷慨", "幽默", "热情", "乐观"},
		weaknesses:  []string{"承诺恐惧症", "不耐烦", "说话不经大脑", "缺乏责任感"},
		likes:       []string{"自由", "旅行", "哲学", "户外活动"},
		dislikes:    []string{"束缚", "细节", "被控制", "平凡"},
		description: "射手座是黄道十二宫的第九个星座，以其乐观和自由精神而著称。射手座的人通常热情、直率、乐观，喜欢冒险和探索。他们有很强的哲学思维和幽默感，但有时可能显得不耐烦或缺乏责任感。",
	},
	{
		element:     "土象",
		ruling:      "土星",
		traits:      []string{"负责", "纪律", "自控", "保守"},
		strengths:   []string{"责任感", "纪律性", "自控", "管理能力"},
		weaknesses:  []string{"固执", "悲观", "冷漠", "过于传统"},
		likes:       []string{"家庭", "传统", "质量", "成就"},
		dislikes:    []string{"几乎所有新潮的东西", "承认失败", "浪费时间", "肤浅"},
		description: "摩羯座是黄道十二宫的第十个星座，以其责任感和纪律性而闻名。摩羯座的人通常非常务实、有抱负、有耐心，重视传统和成就。他们有很强的自控能力和管理才能，但有时可能显得过于保守或悲观。",
	},
	{
		element:     "风象",
		ruling:      "天王星",
		traits:      []string{"独立", "原创", "人道主义", "叛逆"},
		strengths:   []string{"进步", "原创", "独立", "人道主义"},
		weaknesses:  []string{"情感疏离", "叛逆", "固执", "不切实际"},
		likes:       []string{"有趣", "帮助他人", "与朋友在一起", "智力对话"},
		dislikes:    []string{"限制", "破碎的承诺", "孤独", "平凡"},
		description: "水瓶座是黄道十二宫的第十一个星座，以其独立性和创新精神而著称。水瓶座的人通常非常有创意、独立、人道主义，喜欢新奇和变革。他们有很强的智力和社会意识，但有时可能显得情感疏离或叛逆。",
	},
	{
		element:     "水象",
		ruling:      "海王星",
		traits:      []string{"直觉", "情感", "艺术", "梦幻"},
		strengths:   []string{"富有同情心", "艺术", "直觉", "温柔"},
		weaknesses:  []string{"恐惧", "过度信任", "悲伤", "逃避现实"},
		likes:       []string{"独处", "睡眠", "音乐", "浪漫"},
		dislikes:    []string{"批评", "残忍", "过去的事实", "平凡"},
		description: "双鱼座是黄道十二宫的第十二个星座，以其情感丰富和直觉能力而闻名。双鱼座的人通常非常有同情心、艺术感和直觉，他们富有想象力和敏感性。双鱼座的人通常很温柔和善良，但有时可能显得过于理想化或逃避现实。",
	},
}

var profilesEn = [signCount]profileText{
	{
		element:     "Fire",
		ruling:      "Mars",
		traits:      []string{"Brave", "Confident", "Passionate", "Impulsive"},
		strengths:   []string{"Courage", "Decisiveness", "Confidence", "Optimism"},
		weaknesses:  []string{"Impatience", "Impulsiveness", "Self-centeredness", "Combativeness"},
		likes:       []string{"Challenges", "Leading", "Sports", "Personal achievement"},
		dislikes:    []string{"Waiting", "Admitting defeat", "Being ignored", "Detail work"},
		description: "Aries is the first sign of the zodiac and stands for new beginnings. Aries people are usually energetic and adventurous, and they love challenge and competition. They are direct and honest, at times reckless and impulsive. Aries often shows strong leadership but may overlook details out of impatience.",
	},
	{
		element:     "Earth",
		ruling:      "Venus",
		traits:      []string{"Steady", "Practical", "Reliable", "Stubborn"},
		strengths:   []string{"Reliability", "Patience", "Practicality", "Devotion"},
		weaknesses:  []string{"Stubbornness", "Possessiveness", "Materialism", "Resistance to change"},
		likes:       []string{"Gardening", "Cooking", "Music", "Romance"},
		dislikes:    []string{"Sudden changes", "Complications", "Insecurity", "Synthetic things"},
		description: "Taurus is the second sign of the zodiac and is known for stability and dependability. Taurus people are practical and patient, and they value security and comfort. They deeply appreciate good food, art and nature, but can be stubborn and resistant to change.",
	},
	{
		element:     "Air",
		ruling:      "Mercury",
		traits:      []string{"Curious", "Adaptable", "Flexible", "Sociable"},
		strengths:   []string{"Communication", "Adaptability", "Quick learning", "Versatility"},
		weaknesses:  []string{"Indecisiveness", "Nervousness", "Inconsistency", "Superficiality"},
		likes:       []string{"Conversation", "Reading", "Learning new things", "Freedom"},
		dislikes:    []string{"Loneliness", "Restrictions", "Repetition", "Routine"},
		description: "Gemini is the third sign of the zodiac and is known for versatility and communication. Gemini people are usually clever and curious, and they enjoy learning and talking with others. They think fast and adapt easily, but may seem indecisive or superficial at times.",
	},
	{
		element:     "Water",
		ruling:      "Moon",
		traits:      []string{"Emotional", "Intuitive", "Protective", "Sensitive"},
		strengths:   []string{"Emotional depth", "Loyalty", "Protectiveness", "Compassion"},
		weaknesses:  []string{"Moodiness", "Sentimentality", "Overprotectiveness", "Holding grudges"},
		likes:       []string{"Family", "Security", "Tradition", "Water"},
		dislikes:    []string{"Strangers", "Criticism", "Exposed privacy", "Coldness"},
		description: "Cancer is the fourth sign of the zodiac and is known for emotional depth and protectiveness. Cancer people care deeply about family and loved ones, with strong intuition and compassion. They value security and stability, but can be moody or sentimental.",
	},
	{
		element:     "Fire",
		ruling:      "Sun",
		traits:      []string{"Confident", "Generous", "Loyal", "Dramatic"},
		strengths:   []string{"Creativity", "Generosity", "Warmth", "Humor"},
		weaknesses:  []string{"Arrogance", "Stubbornness", "Laziness", "Inflexibility"},
		likes:       []string{"Theater", "Leisure", "Expensive things", "Bright colors"},
		dislikes:    []string{"Being ignored", "Facing hard reality", "Not being appreciated", "Difficulties"},
		description: "Leo is the fifth sign of the zodiac and is known for confidence and leadership. Leo people are warm, generous and loyal, and they like being the center of attention. They are creative and expressive, but may come across as arrogant or stubborn.",
	},
	{
		element:     "Earth",
		ruling:      "Mercury",
		traits:      []string{"Analytical", "Practical", "Diligent", "Critical"},
		strengths:   []string{"Analytical skill", "Diligence", "Practicality", "Reliability"},
		weaknesses:  []string{"Pickiness", "Worrying", "Perfectionism", "Overcriticism"},
		likes:       []string{"Animals", "Healthy food", "Books", "Nature"},
		dislikes:    []string{"Rudeness", "Asking for help", "Being the center of attention", "Disorder"},
		description: "Virgo is the sixth sign of the zodiac and is known for analysis and practicality. Virgo people are hardworking, careful and organized, with an eye for detail and perfection. They think critically, but can be overly picky or anxious.",
	},
	{
		element:     "Air",
		ruling:      "Venus",
		traits:      []string{"Balanced", "Harmonious", "Fair", "Social"},
		strengths:   []string{"Diplomacy", "Fairness", "Social skill", "Cooperation"},
		weaknesses:  []string{"Indecisiveness", "Avoiding conflict", "Resentment", "Self-pity"},
		likes:       []string{"Harmony", "Sharing", "The outdoors", "Art"},
		dislikes:    []string{"Violence", "Injustice", "Rudeness", "Conformity"},
		description: "Libra is the seventh sign of the zodiac and is known for balance and fairness. Libra people seek harmony and have strong social and diplomatic talents. They appreciate beauty and art, but may be indecisive or avoid conflict.",
	},
	{
		element:     "Water",
		ruling:      "Pluto",
		traits:      []string{"Passionate", "Determined", "Mysterious", "Intense"},
		strengths:   []string{"Determination", "Courage", "Loyalty", "Insight"},
		weaknesses:  []string{"Jealousy", "Stubbornness", "Manipulation", "Suspicion"},
		likes:       []string{"Truth", "Facts", "Goals", "Big dreams"},
		dislikes:    []string{"Falseness", "Passivity", "Lies", "Superficiality"},
		description: "Scorpio is the eighth sign of the zodiac and is known for intense emotion and mystery. Scorpio people are passionate, determined and perceptive, and they pursue truth and depth. They are resolute and loyal, but can be jealous or stubborn.",
	},
	{
		element:     "Fire",
		ruling:      "Jupiter",
		traits:      []string{"Optimistic", "Free-spirited", "Philosophical", "Outspoken"},
		strengths:   []string{"Generosity", "Humor", "Enthusiasm", "Optimism"},
		weaknesses:  []string{"Fear of commitment", "Impatience", "Tactlessness", "Irresponsibility"},
		likes:       []string{"Freedom", "Travel", "Philosophy", "The outdoors"},
		dislikes:    []string{"Constraints", "Details", "Being controlled", "The ordinary"},
		description: "Sagittarius is the ninth sign of the zodiac and is known for optimism and a free spirit. Sagittarius people are enthusiastic and outspoken, and they love adventure and exploration. They have a philosophical mind and a good sense of humor, but can be impatient or irresponsible.",
	},
	{
		element:     "Earth",
		ruling:      "Saturn",
		traits:      []string{"Responsible", "Disciplined", "Self-controlled", "Conservative"},
		strengths:   []string{"Responsibility", "Discipline", "Self-control", "Management"},
		weaknesses:  []string{"Stubbornness", "Pessimism", "Aloofness", "Excessive traditionalism"},
		likes:       []string{"Family", "Tradition", "Quality", "Achievement"},
		dislikes:    []string{"Almost anything trendy", "Admitting defeat", "Wasting time", "Superficiality"},
		description: "Capricorn is the tenth sign of the zodiac and is known for responsibility and discipline. Capricorn people are practical, ambitious and patient, and they value tradition and achievement. They have strong self-control and management skill, but may seem too conservative or pessimistic.",
	},
	{
		element:     "Air",
		ruling:      "Uranus",
		traits:      []string{"Independent", "Original", "Humanitarian", "Rebellious"},
		strengths:   []string{"Progressiveness", "Originality", "Independence", "Humanitarianism"},
		weaknesses:  []string{"Emotional distance", "Rebelliousness", "Stubbornness", "Impracticality"},
		likes:       []string{"Fun", "Helping others", "Time with friends", "Intellectual conversation"},
		dislikes:    []string{"Limitations", "Broken promises", "Loneliness", "The ordinary"},
		description: "Aquarius is the eleventh sign of the zodiac and is known for independence and innovation. Aquarius people are creative and humanitarian, and they enjoy novelty and change. They have a sharp intellect and social awareness, but may seem emotionally distant or rebellious.",
	},
	{
		element:     "Water",
		ruling:      "Neptune",
		traits:      []string{"Intuitive", "Emotional", "Artistic", "Dreamy"},
		strengths:   []string{"Compassion", "Artistry", "Intuition", "Gentleness"},
		weaknesses:  []string{"Fearfulness", "Overtrusting", "Sadness", "Escapism"},
		likes:       []string{"Solitude", "Sleep", "Music", "Romance"},
		dislikes:    []string{"Criticism", "Cruelty", "Dwelling on the past", "The ordinary"},
		description: "Pisces is the twelfth sign of the zodiac and is known for emotional richness and intuition. Pisces people are compassionate, artistic and imaginative. They are gentle and kind, but can be overly idealistic or escape from reality.",
	},
}
