package java

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	VisibilityPackage   Visibility = "package"
)

type ClassKind string

const (
	ClassKindClass      ClassKind = "class"
	ClassKindInterface  ClassKind = "interface"
	ClassKindEnum       ClassKind = "enum"
	ClassKindAnnotation ClassKind = "annotation"
	ClassKindRecord     ClassKind = "record"
)

// ClassModel is the static description of one Java type. Models are produced
// by ParseSource or LoadTypes and are never mutated once added to a Graph.
type ClassModel struct {
	Name        string            `yaml:"name"`
	SimpleName  string            `yaml:"simpleName,omitempty"`
	Package     string            `yaml:"package,omitempty"`
	SuperClass  string            `yaml:"superClass,omitempty"`
	Interfaces  []string          `yaml:"interfaces,omitempty"`
	Visibility  Visibility        `yaml:"visibility,omitempty"`
	Kind        ClassKind         `yaml:"kind,omitempty"`
	IsFinal     bool              `yaml:"final,omitempty"`
	IsAbstract  bool              `yaml:"abstract,omitempty"`
	SourceFile  string            `yaml:"sourceFile,omitempty"`
	// Imports lists the compilation unit's imports; on-demand imports keep
	// their trailing ".*".
	Imports     []string          `yaml:"imports,omitempty"`
	Annotations []AnnotationModel `yaml:"annotations,omitempty"`
	Fields      []FieldModel      `yaml:"fields,omitempty"`
	Methods     []MethodModel     `yaml:"methods,omitempty"`
}

type FieldModel struct {
	Name        string            `yaml:"name"`
	Type        TypeModel         `yaml:"type"`
	Visibility  Visibility        `yaml:"visibility,omitempty"`
	IsStatic    bool              `yaml:"static,omitempty"`
	IsFinal     bool              `yaml:"final,omitempty"`
	Annotations []AnnotationModel `yaml:"annotations,omitempty"`

	// Initializer is the source text of the initializer expression, if any.
	Initializer string `yaml:"initializer,omitempty"`
}

type MethodModel struct {
	Name          string            `yaml:"name"`
	ReturnType    TypeModel         `yaml:"returnType,omitempty"`
	Parameters    []ParameterModel  `yaml:"parameters,omitempty"`
	Visibility    Visibility        `yaml:"visibility,omitempty"`
	IsStatic      bool              `yaml:"static,omitempty"`
	IsAbstract    bool              `yaml:"abstract,omitempty"`
	IsConstructor bool              `yaml:"constructor,omitempty"`
	Annotations   []AnnotationModel `yaml:"annotations,omitempty"`

	// ReturnExpression is set when the body consists of a single return
	// statement and holds the source text of the returned expression.
	ReturnExpression string `yaml:"returns,omitempty"`
}

type ParameterModel struct {
	Name string    `yaml:"name,omitempty"`
	Type TypeModel `yaml:"type"`
}

const constructorName = "<init>"

func (c *ClassModel) IsInterface() bool {
	return c.Kind == ClassKindInterface || c.Kind == ClassKindAnnotation
}

// IsConcrete reports whether instances of the class can be created directly.
func (c *ClassModel) IsConcrete() bool {
	if c.IsInterface() || c.IsAbstract {
		return false
	}
	return true
}

func (c *ClassModel) Annotation(types ...string) *AnnotationModel {
	return findAnnotation(c.Annotations, types)
}

func (c *ClassModel) HasAnnotation(types ...string) bool {
	return c.Annotation(types...) != nil
}

func (c *ClassModel) Field(name string) *FieldModel {
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return &c.Fields[i]
		}
	}
	return nil
}

// DeclaredMethod returns the method declared on c itself with the given name
// and parameter count. Inherited methods are not considered.
func (c *ClassModel) DeclaredMethod(name string, params int) *MethodModel {
	for i := range c.Methods {
		m := &c.Methods[i]
		if !m.IsConstructor && m.Name == name && len(m.Parameters) == params {
			return m
		}
	}
	return nil
}

func (c *ClassModel) Constructors() []MethodModel {
	var ctors []MethodModel
	for _, m := range c.Methods {
		if m.IsConstructor {
			ctors = append(ctors, m)
		}
	}
	return ctors
}

// HasZeroArgConstructor reports whether the class can be instantiated
// without arguments: either no constructor is declared, or a non-private
// constructor without parameters exists.
func (c *ClassModel) HasZeroArgConstructor() bool {
	ctors := c.Constructors()
	if len(ctors) == 0 {
		return true
	}
	for _, ctor := range ctors {
		if len(ctor.Parameters) == 0 && ctor.Visibility != VisibilityPrivate {
			return true
		}
	}
	return false
}

func (f *FieldModel) Annotation(types ...string) *AnnotationModel {
	return findAnnotation(f.Annotations, types)
}

func (m *MethodModel) Annotation(types ...string) *AnnotationModel {
	return findAnnotation(m.Annotations, types)
}

func findAnnotation(anns []AnnotationModel, types []string) *AnnotationModel {
	for i := range anns {
		if anns[i].Is(types...) {
			return &anns[i]
		}
	}
	return nil
}
