package diagfmt

// PrettyOpts управляет человекочитаемым выводом диагностик.
type PrettyOpts struct {
	Color   bool // раскрашивать severity и подчёркивания
	Context int  // зарезервировано: строки контекста вокруг ошибки
}
