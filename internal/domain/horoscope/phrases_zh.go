package horoscope

var phrasesZh = phrasebook{
	prefixes: map[Period]string{
		Daily:    "今天",
		Tomorrow: "明天",
		Weekly:   "这周",
		Monthly:  "这个月",
		Yearly:   "今年",
	},
	overviews: [adviceCount]string{
		"{time}对于{sign}来说是充满活力的时段。你的创造力和直觉都处于高峰状态，这将帮助你解决一些棘手的问题。",
		"{sign}{time}可能会面临一些挑战，但不要担心，这些挑战将帮助你成长。保持冷静和耐心，你会度过这个时期。",
		"{time}是{sign}反思和计划的好时机。花些时间思考你的长期目标，并制定实现这些目标的具体步骤。",
		"{sign}{time}的社交运势很好。这是与朋友和家人联系的好时机，也可能遇到对你未来很重要的人。",
		"{time}{sign}的财运不错。可能会有意外的收入或者投资机会，但记得谨慎决策，不要冲动行事。",
		"{sign}{time}的健康状况需要关注。确保你有足够的休息，并注意饮食和锻炼，保持身心健康。",
		"{time}是{sign}展示才能的好时机。不要害怕站在聚光灯下，你的努力和才华将得到认可和赞赏。",
		"{sign}{time}可能会感到有些情绪波动。尝试通过冥想或其他放松技巧来平衡你的情绪，保持内心平静。",
		"{time}对于{sign}来说是学习和成长的时期。保持开放的心态，你可能会获得新的见解和知识。",
		"{sign}{time}的直觉特别强。相信你的第一感觉，它可能会引导你做出正确的决定。",
	},
	moods: [labelCount]string{
		"平静", "兴奋", "满足", "焦虑", "乐观",
		"沉思", "活力充沛", "敏感", "平衡", "热情",
		"冷静", "好奇", "放松", "专注", "愉快",
	},
	colors: [labelCount]string{
		"红色", "蓝色", "绿色", "黄色", "紫色",
		"橙色", "粉色", "白色", "黑色", "金色",
		"银色", "棕色", "青色", "米色", "灰色",
	},
	work: [adviceCount]string{
		"{time}是{sign}在工作中展示领导能力的好时机。不要害怕承担更多责任，你的努力将得到回报。",
		"{sign}{time}在工作中可能会遇到一些挑战。保持冷静和专注，寻求同事的支持和建议。",
		"{time}是{sign}反思职业目标的好时机。考虑你的长期职业规划，并采取具体步骤向这些目标迈进。",
		"{sign}{time}的团队合作运势很好。这是与同事合作解决问题的好时机，共同努力将带来更好的结果。",
		"{time}{sign}的创造力特别强。利用这一点来解决工作中的问题，你可能会有突破性的想法。",
		"{sign}{time}应该注意工作与生活的平衡。不要让工作压力影响你的健康和个人生活。",
		"{time}是{sign}学习新技能的好时机。参加培训或研讨会，提升你的专业知识和能力。",
		"{sign}{time}可能会收到关于工作表现的反馈。保持开放的心态，将批评视为成长的机会。",
		"{time}对于{sign}来说是建立职业网络的好时机。参加行业活动或与同行交流，扩展你的人脉。",
		"{sign}{time}应该专注于完成未完成的任务。清理你的待办事项列表，为新的项目腾出空间。",
	},
	love: [adviceCount]string{
		"{time}是{sign}表达爱意的好时机。不要害怕向伴侣表达你的感受，真诚的沟通将加深你们的关系。",
		"{sign}{time}在感情中可能会遇到一些挑战。保持耐心和理解，尝试从伴侣的角度看问题。",
		"{time}是{sign}反思感情需求的好时机。考虑你在关系中真正想要什么，并与伴侣坦诚交流。",
		"{sign}{time}的浪漫运势很好。这是与伴侣共度浪漫时光的好时机，或者对单身者来说可能会遇到有趣的人。",
		"{time}{sign}应该关注感情中的小细节。一个小小的体贴举动可能会对你的关系产生积极影响。",
		"{sign}{time}可能会感到有些情感波动。尝试理解这些情绪的根源，避免将负面情绪投射到伴侣身上。",
		"{time}是{sign}在感情中寻求平衡的好时机。确保你既给予又接受，保持关系的健康发展。",
		"{sign}{time}应该关注自己的需求。自爱是健康关系的基础，确保你的情感需求得到满足。",
		"{time}对于{sign}来说是加深感情连接的好时机。与伴侣分享你的梦想和恐惧，建立更深层次的理解。",
		"{sign}单身者{time}可能会遇到有吸引力的人。保持开放的心态，但也要保持真实的自我。",
	},
	health: [adviceCount]string{
		"{time}{sign}应该特别注意身体的信号。如果感到疲劳或不适，给自己一些休息的时间。",
		"{sign}{time}的能量水平很高。这是进行体育锻炼或开始新健身计划的好时机。",
		"{time}是{sign}关注饮食健康的好时机。尝试增加更多的水果和蔬菜，减少加工食品的摄入。",
		"{sign}{time}应该关注心理健康。尝试冥想或深呼吸练习，减轻压力和焦虑。",
		"{time}{sign}可能会感到有些疲劳。确保你有足够的睡眠，并在需要时小憩一下。",
		"{sign}{time}应该避免过度劳累。合理安排你的时间和精力，避免倦怠。",
		"{time}是{sign}尝试新健康习惯的好时机。考虑加入瑜伽课或尝试新的健康食谱。",
		"{sign}{time}应该关注姿势和人体工程学。特别是如果你长时间坐在电脑前工作。",
		"{time}对于{sign}来说是戒除不良习惯的好时机。考虑减少咖啡因或糖的摄入，或者戒烟。",
		"{sign}{time}应该关注水分摄入。确保你喝足够的水，保持身体水分平衡。",
	},
	relationships: [adviceCount]string{
		"{time}是{sign}加强友谊联系的好时机。主动联系久未联系的朋友，或者安排一次小型聚会。",
		"{sign}{time}可能会与一位老朋友重逢，这可能会带来意想不到的机会或启发。",
		"{time}{sign}在社交场合中会特别受欢迎，你的魅力将吸引志同道合的人靠近。",
		"{sign}{time}应该学会在友谊中设定健康的界限，不要因为帮助朋友而牺牲自己的需求。",
		"{time}对于{sign}来说是解决朋友间误会的好时机。坦诚的沟通将帮助你修复可能受损的关系。",
		"{sign}{time}可能会遇到一些社交挑战，记住保持真实的自我，而不是迎合他人的期望。",
		"{time}是{sign}扩展社交圈的好时机。参加新的活动或加入兴趣小组，你会遇到有趣的新朋友。",
		"{sign}{time}应该重视质量而非数量的社交关系，花时间与真正关心你的人在一起。",
		"{time}{sign}的直觉在判断他人意图方面特别准确，相信你的感觉来决定谁值得你的信任。",
		"{sign}在{time}的团队合作中表现出色，你的协调能力和包容心将帮助集体达成目标。",
	},
}
