package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Pages là tất cả các page được render qua layout
var Pages = []string{
	"index",
	"error",
	"genre_list", "genre_detail", "genre_form", "genre_delete",
	"author_list", "author_detail", "author_form", "author_delete",
	"book_list", "book_detail", "book_form", "book_delete",
	"bookinstance_list", "bookinstance_detail", "bookinstance_form", "bookinstance_delete",
}

// Renderer implements gin's render.HTMLRender.
// Mỗi page được parse cùng layout thành một template set riêng,
// nên các page đều có thể định nghĩa block "content".
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(Pages))}

	for _, page := range Pages {
		t, err := template.New("layout").
			Funcs(Funcs()).
			ParseFS(templateFS, layoutFile, "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.pages[page] = t
	}

	return r, nil
}

func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		return missingPage(name)
	}
	return render.HTML{Template: t, Name: "layout", Data: data}
}

type missingPage string

func (m missingPage) Render(w http.ResponseWriter) error {
	m.WriteContentType(w)
	return fmt.Errorf("template %q not registered", string(m))
}

func (m missingPage) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if val := header["Content-Type"]; len(val) == 0 {
		header["Content-Type"] = []string{"text/html; charset=utf-8"}
	}
}

// ========== TEMPLATE FUNCS ==========

func Funcs() template.FuncMap {
	return template.FuncMap{
		"display":     Display,
		"statusClass": StatusClass,
	}
}
