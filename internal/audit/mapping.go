package audit

import "strings"

// ActionResource holds action and resource derived from a gRPC full method name.
type ActionResource struct {
	Action   string
	Resource string
}

// overrides name the console's credential operations explicitly; everything else is derived.
var overrides = map[string]ActionResource{
	"/console.account.v1.AccountService/GetSigningIn":               {"get", "credential"},
	"/console.account.v1.AccountService/MoveCredential":             {"reorder", "credential"},
	"/console.account.v1.AccountService/StartCredentialSetup":       {"setup_started", "credential"},
	"/console.account.v1.AccountService/CompleteOtpSetup":           {"create", "credential"},
	"/console.account.v1.AccountService/CompleteRecoveryCodesSetup": {"create", "credential"},
	"/console.account.v1.AccountService/UpdatePassword":             {"password_updated", "credential"},
	"/console.account.v1.AccountService/RemoveCredential":           {"delete", "credential"},
	"/console.admin.v1.AdminService/ListUserCredentials":            {"list", "credential"},
	"/console.admin.v1.AdminService/DeleteUserCredential":           {"delete", "credential"},
	"/console.admin.v1.AdminService/ListCredentialPolicies":         {"list", "credential_policy"},
	"/console.auth.v1.AuthService/Login":                            {"login", "session"},
}

// ParseFullMethod returns action and resource for a gRPC full method
// (e.g. /console.admin.v1.AdminService/UpdateExecution -> update, execution).
// Unlisted methods derive the action from the method verb and the resource from the
// method noun, falling back to the service name.
func ParseFullMethod(fullMethod string) ActionResource {
	if ar, ok := overrides[fullMethod]; ok {
		return ar
	}
	slash := strings.LastIndex(fullMethod, "/")
	if slash < 0 {
		return ActionResource{Action: "unknown", Resource: "unknown"}
	}
	method := fullMethod[slash+1:]
	beforeSlash := fullMethod[:slash]
	dot := strings.LastIndex(beforeSlash, ".")
	if dot < 0 {
		return ActionResource{Action: strings.ToLower(method), Resource: "unknown"}
	}
	action, noun := splitMethod(method)
	resource := toSnake(strings.TrimSuffix(noun, "s"))
	if resource == "" {
		resource = toSnake(strings.TrimSuffix(beforeSlash[dot+1:], "Service"))
	}
	if resource == "" {
		resource = "unknown"
	}
	return ActionResource{Action: action, Resource: resource}
}

var verbs = []struct{ prefix, action string }{
	{"Get", "get"}, {"List", "list"}, {"Create", "create"}, {"Put", "update"},
	{"Update", "update"}, {"Delete", "delete"}, {"Remove", "delete"},
}

func splitMethod(method string) (action, noun string) {
	for _, v := range verbs {
		if strings.HasPrefix(method, v.prefix) && len(method) > len(v.prefix) {
			return v.action, method[len(v.prefix):]
		}
	}
	return toSnake(method), ""
}

// toSnake converts CamelCase to snake_case.
func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
