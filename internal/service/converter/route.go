package converter

import (
	"convertify/internal/domain"
)

// RouteKind enumerates the conversion pipelines. The zero value is unsupported.
type RouteKind int

const (
	RouteUnsupported RouteKind = iota
	RouteImageReencode
	RouteImageToPDF
	RouteImageToDOCX
	RouteDOCXToPDF
	RouteDOCXToText
	RouteTextToDOCX
	RoutePDFToText
	RoutePDFToDOCX
	RouteTextToPDF
)

var routeNames = map[RouteKind]string{
	RouteUnsupported:   "unsupported",
	RouteImageReencode: "image-reencode",
	RouteImageToPDF:    "image-to-pdf",
	RouteImageToDOCX:   "image-to-docx",
	RouteDOCXToPDF:     "docx-to-pdf",
	RouteDOCXToText:    "docx-to-txt",
	RouteTextToDOCX:    "txt-to-docx",
	RoutePDFToText:     "pdf-to-txt",
	RoutePDFToDOCX:     "pdf-to-docx",
	RouteTextToPDF:     "txt-to-pdf",
}

func (k RouteKind) String() string {
	if name, ok := routeNames[k]; ok {
		return name
	}
	return routeNames[RouteUnsupported]
}

// documentRoutes is the literal (source, target) table for non-image sources.
var documentRoutes = map[[2]string]RouteKind{
	{FormatDOCX, FormatPDF}: RouteDOCXToPDF,
	{FormatDOCX, FormatTXT}: RouteDOCXToText,
	{FormatTXT, FormatDOCX}: RouteTextToDOCX,
	{FormatPDF, FormatTXT}:  RoutePDFToText,
	{FormatPDF, FormatDOCX}: RoutePDFToDOCX,
	{FormatTXT, FormatPDF}:  RouteTextToPDF,
}

// Route is a resolved (source, target) binding.
type Route struct {
	Kind   RouteKind
	Source string
	Target string
}

// Resolve binds a format pair to exactly one pipeline. Every route is a single
// direct hop; pairs outside the matrix return *domain.UnsupportedRouteError.
func Resolve(source, target string) (Route, error) {
	src, dst := NormalizeFormat(source), NormalizeFormat(target)
	route := Route{Source: src, Target: dst}

	srcImage := Classify(src) == ClassImage
	switch {
	case srcImage && Classify(dst) == ClassImage:
		route.Kind = RouteImageReencode
	case srcImage && dst == FormatPDF:
		route.Kind = RouteImageToPDF
	case srcImage && dst == FormatDOCX:
		route.Kind = RouteImageToDOCX
	default:
		route.Kind = documentRoutes[[2]string{src, dst}]
	}

	if route.Kind == RouteUnsupported {
		return route, &domain.UnsupportedRouteError{Source: src, Target: dst}
	}
	return route, nil
}

// SupportedTargets lists every target reachable from source in one hop,
// in KnownFormats order.
func SupportedTargets(source string) []string {
	targets := make([]string, 0)
	for _, target := range KnownFormats() {
		if _, err := Resolve(source, target); err == nil {
			targets = append(targets, target)
		}
	}
	return targets
}
