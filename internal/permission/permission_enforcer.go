package permission

import (
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// One subject per store: the session itself. Policies are the fetched
// tokens split into object and action.
const enforcerModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

const sessionSubject = "session"

func newEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(enforcerModel)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	e.EnableLog(false)
	return e, nil
}

// splitToken turns "leave:approve" into ("leave", "approve"). Tokens without
// an action keep an empty action so they still only match themselves.
func splitToken(token string) (string, string) {
	obj, act, _ := strings.Cut(token, ":")
	return obj, act
}
