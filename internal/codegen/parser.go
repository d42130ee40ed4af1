package codegen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/hengadev/jsonmap/internal/member"
)

// PropertyComment is the comment prefix marking a method as an accessor.
const PropertyComment = "jsonmap:property"

// TypeInfo describes a struct type using jsonmap directives
type TypeInfo struct {
	PackageName string
	TypeName    string
	SourceFile  string
	Fields      []FieldInfo
	Properties  []PropertyInfo
	// HasDeclarer is true when a JSONProperties method is written by hand.
	HasDeclarer bool
}

// FieldInfo describes a field carrying a jsonmap tag
type FieldInfo struct {
	Name     string
	Type     string
	Tag      string
	Position token.Position
}

// PropertyInfo describes a method annotated with //jsonmap:property
type PropertyInfo struct {
	Method     string
	Pointer    bool
	Directives string
	Params     int
	Results    []string
	Position   token.Position
}

// DiscoveryConfig holds configuration for type discovery
type DiscoveryConfig struct {
	// TagKey is the struct tag key holding field directives.
	TagKey string
	// GeneratedSuffix marks generated files, which are not parsed.
	GeneratedSuffix string
}

// DiscoverTypes finds the struct types of the package in packagePath that
// carry field tags or annotated methods. Types are returned in source
// order, files taken by name.
func DiscoverTypes(packagePath string, config *DiscoveryConfig) ([]TypeInfo, error) {
	if config == nil {
		config = &DiscoveryConfig{}
	}
	tagKey := config.TagKey
	if tagKey == "" {
		tagKey = member.DefaultTagKey
	}

	fset := token.NewFileSet()
	filter := func(fi fs.FileInfo) bool {
		name := fi.Name()
		if strings.HasSuffix(name, "_test.go") {
			return false
		}
		return config.GeneratedSuffix == "" || !strings.HasSuffix(name, config.GeneratedSuffix+".go")
	}
	pkgs, err := parser.ParseDir(fset, packagePath, filter, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	var types []TypeInfo
	for pkgName, pkg := range pkgs {
		if strings.HasSuffix(pkgName, "_test") {
			continue
		}

		fileNames := make([]string, 0, len(pkg.Files))
		for name := range pkg.Files {
			fileNames = append(fileNames, name)
		}
		slices.Sort(fileNames)

		index := make(map[string]*TypeInfo)
		var order []string
		for _, name := range fileNames {
			for _, info := range discoverTypesInFile(fset, name, pkg.Files[name], pkgName, tagKey) {
				index[info.TypeName] = &info
				order = append(order, info.TypeName)
			}
		}
		for _, name := range fileNames {
			collectMethods(fset, pkg.Files[name], index)
		}

		for _, typeName := range order {
			info := index[typeName]
			if len(info.Fields) > 0 || len(info.Properties) > 0 {
				types = append(types, *info)
			}
		}
	}

	return types, nil
}

// discoverTypesInFile returns every struct type declared in file.
func discoverTypesInFile(fset *token.FileSet, fileName string, file *ast.File, pkgName, tagKey string) []TypeInfo {
	var types []TypeInfo

	ast.Inspect(file, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.FuncDecl:
			return false
		case *ast.TypeSpec:
			if structType, ok := node.Type.(*ast.StructType); ok {
				types = append(types, analyzeStruct(fset, fileName, pkgName, node.Name.Name, structType, tagKey))
			}
		}
		return true
	})

	return types
}

// analyzeStruct collects the fields of structType carrying a tagKey tag
func analyzeStruct(fset *token.FileSet, fileName, pkgName, typeName string, structType *ast.StructType, tagKey string) TypeInfo {
	info := TypeInfo{
		PackageName: pkgName,
		TypeName:    typeName,
		SourceFile:  filepath.Base(fileName),
	}

	for _, field := range structType.Fields.List {
		tag, ok := lookupTag(field, tagKey)
		if !ok {
			continue
		}
		for _, name := range fieldNames(field) {
			info.Fields = append(info.Fields, FieldInfo{
				Name:     name,
				Type:     getTypeString(field.Type),
				Tag:      tag,
				Position: fset.Position(field.Pos()),
			})
		}
	}

	return info
}

// collectMethods attaches annotated methods of file to the types in index.
func collectMethods(fset *token.FileSet, file *ast.File, index map[string]*TypeInfo) {
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || len(fn.Recv.List) != 1 {
			continue
		}

		typeName, pointer := receiverType(fn.Recv.List[0].Type)
		info, ok := index[typeName]
		if !ok {
			continue
		}

		if fn.Name.Name == "JSONProperties" {
			info.HasDeclarer = true
			continue
		}

		directives, ok := parsePropertyComment(fn.Doc)
		if !ok {
			continue
		}

		info.Properties = append(info.Properties, PropertyInfo{
			Method:     fn.Name.Name,
			Pointer:    pointer,
			Directives: directives,
			Params:     countFields(fn.Type.Params),
			Results:    resultTypes(fn.Type.Results),
			Position:   fset.Position(fn.Pos()),
		})
	}
}

// parsePropertyComment finds a `//jsonmap:property [directives]` line in
// doc and returns its directives as a comma separated list.
func parsePropertyComment(doc *ast.CommentGroup) (string, bool) {
	if doc == nil {
		return "", false
	}

	for _, comment := range doc.List {
		text := strings.TrimSpace(comment.Text)
		text = strings.TrimPrefix(text, "//")
		text = strings.TrimPrefix(text, "/*")
		text = strings.TrimSuffix(text, "*/")
		text = strings.TrimSpace(text)

		rest, found := strings.CutPrefix(text, PropertyComment)
		if !found || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
			continue
		}
		return strings.Join(strings.Fields(rest), ","), true
	}
	return "", false
}

func lookupTag(field *ast.Field, tagKey string) (string, bool) {
	if field.Tag == nil {
		return "", false
	}
	raw, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return "", false
	}
	return reflect.StructTag(raw).Lookup(tagKey)
}

// fieldNames returns the declared names of field, or the type name of an
// embedded field.
func fieldNames(field *ast.Field) []string {
	if len(field.Names) == 0 {
		name, _ := receiverType(field.Type)
		return []string{name}
	}
	names := make([]string, 0, len(field.Names))
	for _, name := range field.Names {
		names = append(names, name.Name)
	}
	return names
}

// receiverType returns the base type name of a receiver expression and
// whether it is a pointer.
func receiverType(expr ast.Expr) (string, bool) {
	pointer := false
	if star, ok := expr.(*ast.StarExpr); ok {
		pointer = true
		expr = star.X
	}
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name, pointer
	case *ast.SelectorExpr:
		return t.Sel.Name, pointer
	case *ast.IndexExpr:
		name, _ := receiverType(t.X)
		return name, pointer
	case *ast.IndexListExpr:
		name, _ := receiverType(t.X)
		return name, pointer
	default:
		return "", pointer
	}
}

func countFields(list *ast.FieldList) int {
	if list == nil {
		return 0
	}
	n := 0
	for _, field := range list.List {
		if len(field.Names) == 0 {
			n++
			continue
		}
		n += len(field.Names)
	}
	return n
}

func resultTypes(list *ast.FieldList) []string {
	if list == nil {
		return nil
	}
	var results []string
	for _, field := range list.List {
		count := max(len(field.Names), 1)
		for range count {
			results = append(results, getTypeString(field.Type))
		}
	}
	return results
}

// getTypeString converts an ast.Expr to its string representation
func getTypeString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.ArrayType:
		return "[]" + getTypeString(t.Elt)
	case *ast.StarExpr:
		return "*" + getTypeString(t.X)
	case *ast.SelectorExpr:
		return getTypeString(t.X) + "." + t.Sel.Name
	case *ast.MapType:
		return "map[" + getTypeString(t.Key) + "]" + getTypeString(t.Value)
	case *ast.InterfaceType:
		return "interface{}"
	default:
		return "unknown"
	}
}
