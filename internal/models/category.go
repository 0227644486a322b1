package models

// projectCategories — фиксированный список направлений проектов.
// В базе не хранится и через сайт не редактируется.
var projectCategories = []string{
	"Учись и познавай!", "Дерзай и открывай!", "Найди призвание!", "Создавай и вдохновляй!",
	"Благо твори!", "Служи Отечеству!", "Достигай и побеждай!", "Будь здоров!",
	"Расскажи о главном!", "Умей дружить!", "Береги планету!", "Открывай страну!",
}

// ProjectCategories возвращает копию списка, чтобы вызывающий
// не мог поменять общий слайс.
func ProjectCategories() []string {
	out := make([]string, len(projectCategories))
	copy(out, projectCategories)
	return out
}
