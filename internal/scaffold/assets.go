package scaffold

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.page.Title}} | {{.site.Title}}</title>
  <link rel="stylesheet" href="/static/style.css">
</head>
<body>
  <header><a href="/">{{.site.Title}}</a> <small>{{.site.Tagline}}</small></header>
  <article>
    <h1>{{.page.Title}}</h1>
    {{- if .page.ShowDate}}{{with .page.Date}}
    <p class="meta">{{.Format "January 2, 2006"}} by {{$.page.Author}}</p>
    {{- end}}{{end}}
    {{.content}}
  </article>
</body>
</html>
`

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.index.Title}} | {{.site.Title}}</title>
  <link rel="stylesheet" href="/static/style.css">
</head>
<body>
  <header><a href="/">{{.site.Title}}</a> <small>{{.site.Tagline}}</small></header>
  <h1>{{.index.Title}}</h1>
  {{- with .index.Description}}
  <p>{{.}}</p>
  {{- end}}
  <ul>
  {{- range .pages}}
    <li><a href="{{.Link}}">{{.Title}}</a>{{if .ShowDate}}{{with .Date}} <time>{{.}}</time>{{end}}{{end}}</li>
  {{- end}}
  </ul>
</body>
</html>
`

const styleSheet = `body {
  max-width: 42rem;
  margin: 2rem auto;
  padding: 0 1rem;
  font-family: system-ui, sans-serif;
  line-height: 1.6;
}

pre {
  padding: 1rem;
  overflow-x: auto;
  border-radius: 4px;
}

.meta {
  color: #666;
}
`
