package java

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tsjava "github.com/smacker/go-tree-sitter/java"
)

// SyntaxError is returned by ParseSource for sources that do not parse
// cleanly. Line is 1-based.
type SyntaxError struct {
	Path string
	Line int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: syntax error", e.Path, e.Line)
}

// ParseSource extracts the models of every type declared in one Java
// compilation unit, nested types included. Type names are resolved against
// the unit's package and imports; see ResolveReferences for references that
// need the rest of the source tree.
func ParseSource(ctx context.Context, src []byte, path string) ([]*ClassModel, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(tsjava.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, nil
	}
	if root.HasError() {
		return nil, &SyntaxError{Path: path, Line: firstErrorLine(root)}
	}

	u := &compilationUnit{src: src, path: path}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "package_declaration":
			u.pkg = u.qualifiedName(child)
		case "import_declaration":
			u.imports = append(u.imports, u.importName(child))
		}
	}
	u.resolver = newTypeResolver(u.pkg, u.imports)

	var decls []*sitter.Node
	for i := 0; i < int(root.NamedChildCount()); i++ {
		if child := root.NamedChild(i); isTypeDeclaration(child) {
			decls = append(decls, child)
		}
	}
	for _, decl := range decls {
		u.declare(decl, u.pkg)
	}

	var models []*ClassModel
	for _, decl := range decls {
		models = append(models, u.typeDeclaration(decl, "")...)
	}
	return models, nil
}

type compilationUnit struct {
	src      []byte
	path     string
	pkg      string
	imports  []string
	resolver *typeResolver
}

func isTypeDeclaration(n *sitter.Node) bool {
	switch n.Type() {
	case "class_declaration", "interface_declaration", "enum_declaration",
		"record_declaration", "annotation_type_declaration":
		return true
	}
	return false
}

func firstErrorLine(n *sitter.Node) int {
	if n.Type() == "ERROR" || n.IsMissing() {
		return int(n.StartPoint().Row) + 1
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.HasError() || child.IsMissing() {
			return firstErrorLine(child)
		}
	}
	return int(n.StartPoint().Row) + 1
}

func (u *compilationUnit) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(u.src)
}

func (u *compilationUnit) qualifiedName(n *sitter.Node) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "scoped_identifier" || child.Type() == "identifier" {
			return u.text(child)
		}
	}
	return ""
}

func (u *compilationUnit) importName(n *sitter.Node) string {
	name := u.qualifiedName(n)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if n.NamedChild(i).Type() == "asterisk" {
			return name + ".*"
		}
	}
	return name
}

// declare registers the simple names of a declaration and its nested types
// so references inside the unit resolve to them.
func (u *compilationUnit) declare(n *sitter.Node, outer string) {
	name := u.text(n.ChildByFieldName("name"))
	if name == "" {
		return
	}
	qualified := name
	if outer != "" {
		qualified = outer + "." + name
	}
	u.resolver.declare(name, qualified)
	for _, member := range u.bodyMembers(n) {
		if isTypeDeclaration(member) {
			u.declare(member, qualified)
		}
	}
}

// bodyMembers returns the member declarations of a type body, looking
// through the enum body declarations section.
func (u *compilationUnit) bodyMembers(n *sitter.Node) []*sitter.Node {
	body := n.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var members []*sitter.Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() == "enum_body_declarations" {
			for j := 0; j < int(child.NamedChildCount()); j++ {
				members = append(members, child.NamedChild(j))
			}
			continue
		}
		members = append(members, child)
	}
	return members
}

func (u *compilationUnit) typeDeclaration(n *sitter.Node, outer string) []*ClassModel {
	name := u.text(n.ChildByFieldName("name"))
	model := &ClassModel{
		Name:       name,
		SimpleName: name,
		Package:    u.pkg,
		Visibility: VisibilityPackage,
		SourceFile: u.path,
		Imports:    u.imports,
	}
	switch {
	case outer != "":
		model.Name = outer + "." + name
	case u.pkg != "":
		model.Name = u.pkg + "." + name
	}

	switch n.Type() {
	case "class_declaration":
		model.Kind = ClassKindClass
	case "interface_declaration":
		model.Kind = ClassKindInterface
		model.IsAbstract = true
	case "enum_declaration":
		model.Kind = ClassKindEnum
		model.SuperClass = "java.lang.Enum"
		model.IsFinal = true
	case "record_declaration":
		model.Kind = ClassKindRecord
		model.SuperClass = "java.lang.Record"
		model.IsFinal = true
	case "annotation_type_declaration":
		model.Kind = ClassKindAnnotation
		model.IsAbstract = true
	}

	mods := u.modifiers(n)
	if mods.visibility != "" {
		model.Visibility = mods.visibility
	}
	model.IsAbstract = model.IsAbstract || mods.isAbstract
	model.IsFinal = model.IsFinal || mods.isFinal
	model.Annotations = mods.annotations

	if super := n.ChildByFieldName("superclass"); super != nil {
		if types := u.typeList(super); len(types) > 0 {
			model.SuperClass = types[0]
		}
	}
	if model.Kind == ClassKindClass && model.SuperClass == "" && model.Name != ObjectType {
		model.SuperClass = ObjectType
	}
	if interfaces := n.ChildByFieldName("interfaces"); interfaces != nil {
		model.Interfaces = append(model.Interfaces, u.typeList(interfaces)...)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child.Type() == "extends_interfaces" {
			model.Interfaces = append(model.Interfaces, u.typeList(child)...)
		}
	}

	if model.Kind == ClassKindRecord {
		u.recordComponents(n, model)
	}

	models := []*ClassModel{model}
	inInterface := model.IsInterface()
	for _, member := range u.bodyMembers(n) {
		switch member.Type() {
		case "field_declaration", "constant_declaration":
			model.Fields = append(model.Fields, u.fields(member, inInterface)...)
		case "method_declaration", "annotation_type_element_declaration":
			model.Methods = append(model.Methods, u.method(member, inInterface))
		case "constructor_declaration", "compact_constructor_declaration":
			model.Methods = append(model.Methods, u.constructor(member))
		default:
			if isTypeDeclaration(member) {
				models = append(models, u.typeDeclaration(member, model.Name)...)
			}
		}
	}
	return models
}

type modifierSet struct {
	visibility  Visibility
	isStatic    bool
	isFinal     bool
	isAbstract  bool
	annotations []AnnotationModel
}

func (u *compilationUnit) modifiers(n *sitter.Node) modifierSet {
	var mods modifierSet
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() != "modifiers" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			m := child.Child(j)
			switch m.Type() {
			case "public":
				mods.visibility = VisibilityPublic
			case "protected":
				mods.visibility = VisibilityProtected
			case "private":
				mods.visibility = VisibilityPrivate
			case "static":
				mods.isStatic = true
			case "final":
				mods.isFinal = true
			case "abstract":
				mods.isAbstract = true
			case "marker_annotation", "annotation":
				mods.annotations = append(mods.annotations, u.annotation(m))
			}
		}
	}
	return mods
}

// typeList returns the qualified names of the types listed under n, looking
// through superclass, super_interfaces, extends_interfaces and type_list
// wrappers.
func (u *compilationUnit) typeList(n *sitter.Node) []string {
	var out []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "type_list" {
			out = append(out, u.typeList(child)...)
			continue
		}
		if t := u.typeOf(child); !t.IsZero() {
			out = append(out, t.String())
		}
	}
	return out
}

func (u *compilationUnit) typeOf(n *sitter.Node) TypeModel {
	if n == nil {
		return TypeModel{}
	}
	switch n.Type() {
	case "array_type":
		t := u.typeOf(n.ChildByFieldName("element"))
		t.ArrayDepth += strings.Count(u.text(n.ChildByFieldName("dimensions")), "[")
		return t
	case "generic_type":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if child.Type() == "type_identifier" || child.Type() == "scoped_type_identifier" {
				return u.typeOf(child)
			}
		}
		return TypeModel{}
	case "integral_type", "floating_point_type", "boolean_type", "void_type":
		return TypeModel{Name: u.text(n)}
	case "type_identifier", "scoped_type_identifier":
		return TypeModel{Name: u.resolver.resolve(stripSpace(u.text(n)))}
	}
	return TypeModel{}
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func (u *compilationUnit) fields(n *sitter.Node, inInterface bool) []FieldModel {
	mods := u.modifiers(n)
	base := u.typeOf(n.ChildByFieldName("type"))
	vis := mods.visibility
	if vis == "" {
		vis = VisibilityPackage
	}
	if inInterface {
		vis = VisibilityPublic
		mods.isStatic = true
		mods.isFinal = true
	}
	var out []FieldModel
	for i := 0; i < int(n.NamedChildCount()); i++ {
		decl := n.NamedChild(i)
		if decl.Type() != "variable_declarator" {
			continue
		}
		t := base
		t.ArrayDepth += strings.Count(u.text(decl.ChildByFieldName("dimensions")), "[")
		out = append(out, FieldModel{
			Name:        u.text(decl.ChildByFieldName("name")),
			Type:        t,
			Visibility:  vis,
			IsStatic:    mods.isStatic,
			IsFinal:     mods.isFinal,
			Annotations: mods.annotations,
			Initializer: u.text(decl.ChildByFieldName("value")),
		})
	}
	return out
}

func (u *compilationUnit) method(n *sitter.Node, inInterface bool) MethodModel {
	mods := u.modifiers(n)
	m := MethodModel{
		Name:        u.text(n.ChildByFieldName("name")),
		ReturnType:  u.typeOf(n.ChildByFieldName("type")),
		Parameters:  u.parameters(n.ChildByFieldName("parameters")),
		Visibility:  mods.visibility,
		IsStatic:    mods.isStatic,
		IsAbstract:  mods.isAbstract,
		Annotations: mods.annotations,
	}
	m.ReturnType.ArrayDepth += strings.Count(u.text(n.ChildByFieldName("dimensions")), "[")
	body := n.ChildByFieldName("body")
	if m.Visibility == "" {
		m.Visibility = VisibilityPackage
		if inInterface {
			m.Visibility = VisibilityPublic
		}
	}
	if body == nil && !m.IsStatic {
		m.IsAbstract = m.IsAbstract || inInterface
	}
	m.ReturnExpression = u.singleReturn(body)
	return m
}

func (u *compilationUnit) constructor(n *sitter.Node) MethodModel {
	mods := u.modifiers(n)
	m := MethodModel{
		Name:          constructorName,
		ReturnType:    TypeModel{Name: "void"},
		Parameters:    u.parameters(n.ChildByFieldName("parameters")),
		Visibility:    mods.visibility,
		IsConstructor: true,
		Annotations:   mods.annotations,
	}
	if m.Visibility == "" {
		m.Visibility = VisibilityPackage
	}
	return m
}

// singleReturn returns the returned expression of a body made of exactly
// one return statement.
func (u *compilationUnit) singleReturn(body *sitter.Node) string {
	if body == nil {
		return ""
	}
	var stmts []*sitter.Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() == "line_comment" || child.Type() == "block_comment" {
			continue
		}
		stmts = append(stmts, child)
	}
	if len(stmts) != 1 || stmts[0].Type() != "return_statement" {
		return ""
	}
	ret := stmts[0]
	for i := 0; i < int(ret.NamedChildCount()); i++ {
		child := ret.NamedChild(i)
		if child.Type() != "line_comment" && child.Type() != "block_comment" {
			return u.text(child)
		}
	}
	return ""
}

func (u *compilationUnit) parameters(n *sitter.Node) []ParameterModel {
	if n == nil {
		return nil
	}
	var params []ParameterModel
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "formal_parameter":
			t := u.typeOf(child.ChildByFieldName("type"))
			t.ArrayDepth += strings.Count(u.text(child.ChildByFieldName("dimensions")), "[")
			params = append(params, ParameterModel{
				Name: u.text(child.ChildByFieldName("name")),
				Type: t,
			})
		case "spread_parameter":
			var p ParameterModel
			for j := 0; j < int(child.NamedChildCount()); j++ {
				part := child.NamedChild(j)
				switch part.Type() {
				case "modifiers":
				case "variable_declarator":
					p.Name = u.text(part.ChildByFieldName("name"))
				default:
					if t := u.typeOf(part); !t.IsZero() && p.Type.IsZero() {
						p.Type = t
					}
				}
			}
			p.Type.ArrayDepth++
			params = append(params, p)
		}
	}
	return params
}

// recordComponents adds a private final field per record component and the
// canonical constructor.
func (u *compilationUnit) recordComponents(n *sitter.Node, model *ClassModel) {
	params := u.parameters(n.ChildByFieldName("parameters"))
	for _, p := range params {
		model.Fields = append(model.Fields, FieldModel{
			Name:       p.Name,
			Type:       p.Type,
			Visibility: VisibilityPrivate,
			IsFinal:    true,
		})
	}
	model.Methods = append(model.Methods, MethodModel{
		Name:          constructorName,
		ReturnType:    TypeModel{Name: "void"},
		Parameters:    params,
		Visibility:    model.Visibility,
		IsConstructor: true,
	})
}

func (u *compilationUnit) annotation(n *sitter.Node) AnnotationModel {
	ann := AnnotationModel{
		Type: u.resolver.resolve(stripSpace(u.text(n.ChildByFieldName("name")))),
	}
	args := n.ChildByFieldName("arguments")
	if args == nil {
		return ann
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		child := args.NamedChild(i)
		switch child.Type() {
		case "line_comment", "block_comment":
			continue
		case "element_value_pair":
			if ann.Values == nil {
				ann.Values = make(map[string]any)
			}
			key := u.text(child.ChildByFieldName("key"))
			ann.Values[key] = u.elementValue(child.ChildByFieldName("value"))
		default:
			if ann.Values == nil {
				ann.Values = make(map[string]any)
			}
			ann.Values["value"] = u.elementValue(child)
		}
	}
	return ann
}

func (u *compilationUnit) elementValue(n *sitter.Node) any {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "true":
		return true
	case "false":
		return false
	case "class_literal":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if t := u.typeOf(n.NamedChild(i)); !t.IsZero() {
				return t.String()
			}
		}
		return u.text(n)
	case "element_value_array_initializer":
		values := []any{}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if child.Type() == "line_comment" || child.Type() == "block_comment" {
				continue
			}
			values = append(values, u.elementValue(child))
		}
		return values
	case "annotation", "marker_annotation":
		return u.annotation(n)
	case "text_block":
		return textBlock(u.text(n))
	}
	text := u.text(n)
	if v, isNull, ok := Literal(text); ok && !isNull {
		return v
	}
	return text
}

// textBlock returns the content of a """ text block with the incidental
// indentation removed.
func textBlock(raw string) string {
	body := strings.TrimSuffix(strings.TrimPrefix(raw, `"""`), `"""`)
	_, body, _ = strings.Cut(body, "\n")
	lines := strings.Split(body, "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		}
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return strings.Join(lines, "\n")
}
