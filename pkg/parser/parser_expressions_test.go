package parser

import (
	"testing"

	"tyflow/analyzer-go/pkg/ast"
)

func TestParseNumberLiterals(t *testing.T) {
	source := `let a = 0xff;
let b = 1_000;
let c = 1.5e2;
let d = 0b101;
let e = 10n;
let f = 0x10n;
`
	program := mustParse(t, source)

	expected := ast.Prog(
		ast.Let("a", ast.Num(255)),
		ast.Let("b", ast.Num(1000)),
		ast.Let("c", ast.Num(150)),
		ast.Let("d", ast.Num(5)),
		ast.Let("e", ast.Big("10")),
		ast.Let("f", ast.Big("16")),
	)
	assertProgramsEqual(t, expected, program)
}

func TestParseStringEscapes(t *testing.T) {
	source := `let plain = "hello";
let tabbed = "tab\tend";
let coded = "A\u{1F600}";
let quoted = 'it\'s';
`
	program := mustParse(t, source)

	expected := ast.Prog(
		ast.Let("plain", ast.Str("hello")),
		ast.Let("tabbed", ast.Str("tab\tend")),
		ast.Let("coded", ast.Str("A\U0001F600")),
		ast.Let("quoted", ast.Str("it's")),
	)
	assertProgramsEqual(t, expected, program)
}

func TestParseTemplateLiterals(t *testing.T) {
	source := "let empty = ``;\nlet whole = `just text`;\nlet mixed = `sum ${x} done`;\n"
	program := mustParse(t, source)

	expected := ast.Prog(
		ast.Let("empty", ast.Tmpl([]string{""})),
		ast.Let("whole", ast.Tmpl([]string{"just text"})),
		ast.Let("mixed", ast.Tmpl([]string{"sum ", " done"}, ast.ID("x"))),
	)
	assertProgramsEqual(t, expected, program)
}

func TestParseKeywordLiterals(t *testing.T) {
	source := `let yes = true;
let no = false;
let nothing = null;
let missing = undefined;
`
	program := mustParse(t, source)

	expected := ast.Prog(
		ast.Let("yes", ast.Bool(true)),
		ast.Let("no", ast.Bool(false)),
		ast.Let("nothing", ast.Null()),
		ast.Let("missing", ast.Undef()),
	)
	assertProgramsEqual(t, expected, program)
}

func TestParseOperatorExpressions(t *testing.T) {
	source := `total = base + extra * 2;
mask = flags & ~unset;
ok = a < b && b <= c;
pick = cond ? left : right;
found = name in table;
count++;
--count;
value ??= fallback;
void 0;
typeof value;
`
	program := mustParse(t, source)

	expected := ast.Prog(
		ast.ExprStmt(ast.Assign(ast.ID("total"),
			ast.Bin("+", ast.ID("base"), ast.Bin("*", ast.ID("extra"), ast.Num(2))))),
		ast.ExprStmt(ast.Assign(ast.ID("mask"),
			ast.Bin("&", ast.ID("flags"), ast.Un("~", ast.ID("unset"))))),
		ast.ExprStmt(ast.Assign(ast.ID("ok"),
			ast.Bin("&&", ast.Bin("<", ast.ID("a"), ast.ID("b")), ast.Bin("<=", ast.ID("b"), ast.ID("c"))))),
		ast.ExprStmt(ast.Assign(ast.ID("pick"),
			ast.Cond(ast.ID("cond"), ast.ID("left"), ast.ID("right")))),
		ast.ExprStmt(ast.Assign(ast.ID("found"),
			ast.Bin("in", ast.ID("name"), ast.ID("table")))),
		ast.ExprStmt(ast.Inc(ast.ID("count"))),
		ast.ExprStmt(ast.NewUpdateExpression("--", ast.ID("count"), true)),
		ast.ExprStmt(ast.AssignOp("??=", ast.ID("value"), ast.ID("fallback"))),
		ast.ExprStmt(ast.Un("void", ast.Num(0))),
		ast.ExprStmt(ast.Un("typeof", ast.ID("value"))),
	)
	assertProgramsEqual(t, expected, program)
}

func TestParseMemberAndCallExpressions(t *testing.T) {
	source := `let name = user.profile.name;
let first = items[0];
let safe = user?.contact?.email;
let tail = user?.contact.email;
let keyed = cache?.["key"];
let result = lookup(name, 2);
let chained = api.fetch(id).data;
let created = new Widget("a");
let bare = new Date;
let maybe = handler?.();
`
	program := mustParse(t, source)

	expected := ast.Prog(
		ast.Let("name", ast.Member(ast.Member(ast.ID("user"), "profile"), "name")),
		ast.Let("first", ast.Index(ast.ID("items"), ast.Num(0))),
		ast.Let("safe", ast.OptMember(ast.OptMember(ast.ID("user"), "contact"), "email")),
		ast.Let("tail", ast.Member(ast.OptMember(ast.ID("user"), "contact"), "email")),
		ast.Let("keyed", ast.NewIndexExpression(ast.ID("cache"), ast.Str("key"), true)),
		ast.Let("result", ast.Call(ast.ID("lookup"), ast.ID("name"), ast.Num(2))),
		ast.Let("chained", ast.Member(ast.Call(ast.Member(ast.ID("api"), "fetch"), ast.ID("id")), "data")),
		ast.Let("created", ast.Ctor(ast.ID("Widget"), ast.Str("a"))),
		ast.Let("bare", ast.Ctor(ast.ID("Date"))),
		ast.Let("maybe", ast.NewCallExpression(ast.ID("handler"), []ast.Expression{}, true)),
	)
	assertProgramsEqual(t, expected, program)
}

func TestParseObjectAndArrayLiterals(t *testing.T) {
	source := `let config = {
  name: "dev",
  "max-size": 10,
  0: false,
  [keyVar]: true,
  port,
  start() {
    return 1;
  },
  ...defaults,
};
let list = [1, "two", ...rest];
`
	program := mustParse(t, source)

	expected := ast.Prog(
		ast.Let("config", ast.Obj(
			ast.Prop("name", ast.Str("dev")),
			ast.NewObjectProperty(ast.Str("max-size"), ast.Num(10), false, false),
			ast.NewObjectProperty(ast.Num(0), ast.Bool(false), false, false),
			ast.NewObjectProperty(ast.ID("keyVar"), ast.Bool(true), true, false),
			ast.NewObjectProperty(ast.ID("port"), ast.ID("port"), false, true),
			ast.NewObjectProperty(ast.ID("start"), ast.FnExpr("start", nil, ast.Ret(ast.Num(1))), false, false),
		)),
		ast.Let("list", ast.Arr(ast.Num(1), ast.Str("two"), ast.ID("rest"))),
	)
	assertProgramsEqual(t, expected, program)
}

func TestParseSequenceAndAwait(t *testing.T) {
	source := `let both = (first(), second());
async function load() {
  let data = await fetchAll();
  return data;
}
`
	program := mustParse(t, source)

	expected := ast.Prog(
		ast.Let("both", ast.Seq(ast.Call(ast.ID("first")), ast.Call(ast.ID("second")))),
		ast.FnDecl("load", nil,
			ast.Let("data", ast.Call(ast.ID("fetchAll"))),
			ast.Ret(ast.ID("data")),
		),
	)
	assertProgramsEqual(t, expected, program)
}
