package locale

var translations = map[Language]map[string]string{
	Chinese: {
		"app.name":   "星座大师",
		"app.slogan": "探索星座的奥秘",

		"period.daily":    "今日运势",
		"period.tomorrow": "明日运势",
		"period.weekly":   "本周运势",
		"period.monthly":  "本月运势",
		"period.yearly":   "本年运势",

		"zodiac.name":        "名称",
		"zodiac.nameEn":      "英文名",
		"zodiac.dateRange":   "日期范围",
		"zodiac.element":     "元素",
		"zodiac.ruling":      "主宰星",
		"zodiac.traits":      "特质",
		"zodiac.strengths":   "优点",
		"zodiac.weaknesses":  "缺点",
		"zodiac.likes":       "喜欢",
		"zodiac.dislikes":    "不喜欢",
		"zodiac.description": "描述",

		"horoscope.overview":      "总体运势",
		"horoscope.mood":          "情绪指数",
		"horoscope.lucky_number":  "幸运数字",
		"horoscope.lucky_color":   "幸运颜色",
		"horoscope.compatibility": "速配星座",
		"horoscope.work":          "工作运势",
		"horoscope.love":          "爱情运势",
		"horoscope.health":        "健康运势",
		"horoscope.relationships": "友人关系",
		"horoscope.disclaimer":    "免责声明：本运势仅供娱乐参考，请理性看待。",
	},
	English: {
		"app.name":   "AstroMaster",
		"app.slogan": "Explore the mysteries of the zodiac",

		"period.daily":    "Today",
		"period.tomorrow": "Tomorrow",
		"period.weekly":   "This Week",
		"period.monthly":  "This Month",
		"period.yearly":   "This Year",

		"zodiac.name":        "Name",
		"zodiac.nameEn":      "English Name",
		"zodiac.dateRange":   "Date Range",
		"zodiac.element":     "Element",
		"zodiac.ruling":      "Ruling Planet",
		"zodiac.traits":      "Traits",
		"zodiac.strengths":   "Strengths",
		"zodiac.weaknesses":  "Weaknesses",
		"zodiac.likes":       "Likes",
		"zodiac.dislikes":    "Dislikes",
		"zodiac.description": "Description",

		"horoscope.overview":      "Overview",
		"horoscope.mood":          "Mood",
		"horoscope.lucky_number":  "Lucky Number",
		"horoscope.lucky_color":   "Lucky Color",
		"horoscope.compatibility": "Best Match",
		"horoscope.work":          "Work",
		"horoscope.love":          "Love",
		"horoscope.health":        "Health",
		"horoscope.relationships": "Relationships",
		"horoscope.disclaimer":    "Disclaimer: This horoscope is for entertainment purposes only. Please view it rationally.",
	},
}
