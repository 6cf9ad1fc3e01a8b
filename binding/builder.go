package binding

import (
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/bindgen/ctype"
	"github.com/teranos/bindgen/diag"
	"github.com/teranos/bindgen/logger"
	"github.com/teranos/bindgen/model"
	"github.com/teranos/bindgen/tables"
)

// Builder assembles one Declaration from one RawFunction.
type Builder struct {
	tables     *tables.Tables
	classifier *Classifier
	mapper     *Mapper
	log        *zap.SugaredLogger
}

// NewBuilder returns a builder over tb.
func NewBuilder(tb *tables.Tables) *Builder {
	return &Builder{
		tables:     tb,
		classifier: NewClassifier(tb),
		mapper:     NewMapper(tb),
		log:        logger.ComponentLogger("binding"),
	}
}

// Build walks the parameters left to right. Grouped outputs consume their
// whole window; other parameters become arguments or simple outputs in
// their relative order. Returns are simple outputs, then grouped outputs,
// then the native return value unless it is void or a status code.
func (b *Builder) Build(fn model.RawFunction, diags *diag.List) model.Declaration {
	decl := model.Declaration{
		Name:       b.tables.PublicName(fn.Name),
		NativeName: fn.Name,
		Brief:      strings.TrimSpace(fn.Brief),
		Detailed:   strings.TrimSpace(fn.Detailed),
	}

	var simple, grouped []model.Return
	params := fn.Params
	for i := 0; i < len(params); i++ {
		p := params[i]
		role, group := b.classifier.ClassifyAt(params, i)
		b.log.Debugw("classified", logger.FieldFunction, fn.Name, logger.FieldArgument, p.Name, logger.FieldKind, role.String())

		switch role {
		case GroupedOutputStart:
			for _, member := range params[i : i+len(group.Members)+1] {
				CheckDirection(fn.Name, member, role, diags)
			}
			grouped = append(grouped, b.groupReturn(fn.Name, group, diags))
			i += len(group.Members)
		case SimpleOutput:
			CheckDirection(fn.Name, p, role, diags)
			simple = append(simple, b.outputReturn(fn.Name, p, diags))
		default:
			CheckDirection(fn.Name, p, role, diags)
			decl.Args = append(decl.Args, b.argument(fn.Name, p, diags))
		}
	}

	decl.Returns = append(decl.Returns, simple...)
	decl.Returns = append(decl.Returns, grouped...)
	if ret, ok := b.nativeReturn(fn, diags); ok {
		decl.Returns = append(decl.Returns, ret)
	}
	return decl
}

func (b *Builder) argument(fn string, p model.RawParameter, diags *diag.List) model.Argument {
	typ := ctype.Normalize(p.Type)
	binding, ok := b.mapper.Argument(typ, p.Name)
	if !ok && typ != "" {
		// an empty type was already reported when the description was read
		diags.Addf(diag.TableGap, fn, p.Name, "unhandled %s argument '%s'", typ, p.Name)
	}
	return model.Argument{
		Name:        strings.TrimSpace(p.Name),
		Type:        binding,
		Description: strings.TrimSpace(p.Description),
	}
}

func (b *Builder) outputReturn(fn string, p model.RawParameter, diags *diag.List) model.Return {
	typ := ctype.Normalize(p.Type)
	binding, ok := b.mapper.Output(typ, p.Name)
	if !ok {
		diags.Addf(diag.TableGap, fn, p.Name, "unhandled type %s in argout %s", strings.TrimSpace(p.Type), p.Name)
	}
	return model.Return{
		Name:        strings.TrimSpace(p.Name),
		Type:        binding,
		Description: strings.TrimSpace(p.Description),
	}
}

func (b *Builder) groupReturn(fn string, g tables.Group, diags *diag.List) model.Return {
	binding, ok := b.mapper.Return(g.ReturnType, g.ReturnDescription)
	if !ok {
		diags.Addf(diag.TableGap, fn, g.Head.Name, "unhandled grouped return type %s", g.ReturnType)
	}
	return model.Return{Type: binding, Description: g.ReturnDescription}
}

func (b *Builder) nativeReturn(fn model.RawFunction, diags *diag.List) (model.Return, bool) {
	typ := ctype.Normalize(fn.ReturnType)
	if b.tables.IsVoidReturn(typ) || b.tables.IsStatusReturn(typ) {
		return model.Return{}, false
	}
	if typ == "" {
		diags.Addf(diag.MissingType, fn.Name, "", "no return type")
		return model.Return{}, false
	}

	descr := strings.TrimSpace(fn.ReturnDescription)
	binding, ok := b.mapper.Return(typ, descr)
	if !ok {
		if b.mapper.HasReturnRules(typ) {
			diags.Addf(diag.TableGap, fn.Name, "", "unhandled %s return, description %q names no known kind", typ, descr)
		} else {
			diags.Addf(diag.TableGap, fn.Name, "", "unhandled type %s in return", typ)
		}
	}
	return model.Return{Type: binding, Description: descr}, true
}
