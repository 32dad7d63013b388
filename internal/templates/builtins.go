package templates

const (
	backendAPI = "Backend API"
	frontend   = "Frontend"
	fullstack  = "Fullstack"
	static     = "Static"
)

func builtins() []Template {
	return []Template{
		{Name: "fastapi", Category: backendAPI, Description: "FastAPI service.", Skeleton: "{tests/,README.md,.gitignore}", Component: "fastapi"},
		{Name: "flask", Category: backendAPI, Description: "Flask service.", Skeleton: "{tests/,README.md,.gitignore}", Component: "flask"},
		{Name: "express", Category: backendAPI, Description: "Express service.", Skeleton: "{tests/,README.md,.gitignore}", Component: "express"},
		{Name: "gofiber", Category: backendAPI, Description: "Go Fiber service.", Skeleton: "{README.md,.gitignore}", Component: "gofiber"},

		{Name: "react", Category: frontend, Description: "React app on Vite.", Skeleton: "{public/,README.md,.gitignore}", Component: "react"},
		{Name: "vue", Category: frontend, Description: "Vue app on Vite.", Skeleton: "{public/,README.md,.gitignore}", Component: "vue"},
		{Name: "svelte", Category: frontend, Description: "SvelteKit app.", Skeleton: "{static/,src/lib/,README.md,.gitignore}", Component: "svelte"},
		{Name: "angular", Category: frontend, Description: "Angular app.", Skeleton: "{src/assets/,README.md,.gitignore}", Component: "angular"},
		{Name: "nextjs", Category: frontend, Description: "Next.js app.", Skeleton: "{public/,README.md,.gitignore}", Component: "nextjs"},
		{Name: "nuxtjs", Category: frontend, Description: "Nuxt app.", Skeleton: "{public/,README.md,.gitignore}", Component: "nuxtjs"},

		{Name: "django", Category: fullstack, Description: "Django project.", Skeleton: "{templates/,static/,README.md,.gitignore}", Component: "django"},
		{Name: "laravel", Category: fullstack, Description: "Laravel application.", Skeleton: "{resources/views/,routes/,README.md,.gitignore}", Component: "laravel"},
		{Name: "symfony", Category: fullstack, Description: "Symfony application.", Skeleton: "{config/,templates/,README.md,.gitignore}", Component: "symfony"},

		{Name: "simple", Category: static, Description: "Minimal project layout.", Skeleton: "{src/,docs/,tests/,README.md}"},
		{Name: "low_level", Category: static, Description: "Layout for C and other systems projects.", Skeleton: "{src/{lib,bin,include}/,docs/{user,dev}/,tests/,examples/,README.md,LICENSE}"},
		{Name: "static", Category: static, Description: "Static website.", Skeleton: "{css/style.css,js/main.js,images/,index.html,README.md}"},
	}
}
