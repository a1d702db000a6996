package report

import "github.com/ngts-qa/qaview/internal/showhide"

// StaticPrefix is the page-relative directory holding the binder assets.
const StaticPrefix = "static/"

// Binder assets copied next to the page.
const (
	WasmExecFile = "wasm_exec.js"
	BinderFile   = "showhide.wasm"
)

// pageTemplate renders the report. Every image section carries the
// show/hide button whose id links it to the image below it.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>` + cssContent + `</style>
</head>
<body{{if gt .TransitionMS 0}} data-showhide-duration="{{.TransitionMS}}"{{end}}>
<h1>{{.Title}}</h1>
{{- if .Intro}}
<div class="intro">{{.Intro}}</div>
{{- end}}
<div id="images">
{{- range $i, $img := .Images}}
{{- if $i}}<br />{{end}}
<section class="plot">
{{$.HeadingOpen}}{{$img.Title}}{{$.HeadingClose}}
<button type="button" class="` + showhide.ControlClass + `" id="{{$img.ControlID}}">{{$.Label}}</button>
<img id="{{$img.TargetID}}" src="{{$img.Src}}" alt="{{$img.Title}}"
  {{- if $.Width}} width="{{$.Width}}"{{end}}
  {{- if $.Height}} height="{{$.Height}}"{{end}}
  {{- if $.Collapsed}} style="display: none"{{end}} />
</section>
{{- end}}
</div>
<script src="` + StaticPrefix + WasmExecFile + `"></script>
<script>
const go = new Go();
WebAssembly.instantiateStreaming(fetch("` + StaticPrefix + BinderFile + `"), go.importObject)
  .then((result) => go.run(result.instance));
</script>
</body>
</html>
`

const cssContent = `
body { font-family: sans-serif; margin: 2em; }
section.plot { margin-bottom: 1em; }
button.button-showhide { margin-bottom: 0.5em; min-width: 4em; }
.intro { max-width: 60em; }
`
