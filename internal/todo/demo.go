package todo

// DemoSeed is the fixture list a fresh demo session starts with.
func DemoSeed() []Seed {
	return []Seed{
		{Text: "Learn Turborepo"},
		{Text: "Build UI library with shadcn", Completed: true},
		{Text: "Create Todo App"},
	}
}
