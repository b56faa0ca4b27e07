package http11

// Method is an HTTP request method from a closed set.
type Method uint8

// ParseMethod converts a request-line token to a Method.
// The match is exact and case-sensitive; anything else fails with
// ErrInvalidRequestMethod carrying the token.
//
// Allocation behavior: 0 allocs/op on success
func ParseMethod(token string) (Method, error) {
	if m := parseMethodID(token); m != MethodUnknown {
		return m, nil
	}
	return MethodUnknown, newRequestError(ErrInvalidRequestMethod, token)
}

// parseMethodID checks length first to reduce comparisons.
func parseMethodID(method string) Method {
	switch len(method) {
	case 3:
		switch method {
		case methodGETString:
			return MethodGET
		case methodPUTString:
			return MethodPUT
		}

	case 4:
		switch method {
		case methodPOSTString:
			return MethodPOST
		case methodHEADString:
			return MethodHEAD
		}

	case 5:
		switch method {
		case methodPATCHString:
			return MethodPATCH
		case methodTRACEString:
			return MethodTRACE
		}

	case 6:
		if method == methodDELETEString {
			return MethodDELETE
		}

	case 7:
		switch method {
		case methodOPTIONSString:
			return MethodOPTIONS
		case methodCONNECTString:
			return MethodCONNECT
		}
	}

	return MethodUnknown
}

// String returns the method token, or "" for MethodUnknown.
//
// Allocation behavior: 0 allocs/op
func (m Method) String() string {
	switch m {
	case MethodGET:
		return methodGETString
	case MethodPOST:
		return methodPOSTString
	case MethodPUT:
		return methodPUTString
	case MethodDELETE:
		return methodDELETEString
	case MethodPATCH:
		return methodPATCHString
	case MethodHEAD:
		return methodHEADString
	case MethodOPTIONS:
		return methodOPTIONSString
	case MethodCONNECT:
		return methodCONNECTString
	case MethodTRACE:
		return methodTRACEString
	default:
		return ""
	}
}

// Bytes returns the method token as a shared byte slice. Callers must not modify it.
//
// Allocation behavior: 0 allocs/op
func (m Method) Bytes() []byte {
	switch m {
	case MethodGET:
		return methodGETBytes
	case MethodPOST:
		return methodPOSTBytes
	case MethodPUT:
		return methodPUTBytes
	case MethodDELETE:
		return methodDELETEBytes
	case MethodPATCH:
		return methodPATCHBytes
	case MethodHEAD:
		return methodHEADBytes
	case MethodOPTIONS:
		return methodOPTIONSBytes
	case MethodCONNECT:
		return methodCONNECTBytes
	case MethodTRACE:
		return methodTRACEBytes
	default:
		return nil
	}
}

// IsValid reports whether m is one of the supported methods.
func (m Method) IsValid() bool {
	return m >= MethodGET && m <= MethodTRACE
}

// Methods lists every supported method in ID order.
func Methods() []Method {
	return []Method{
		MethodGET, MethodPOST, MethodPUT, MethodDELETE, MethodPATCH,
		MethodHEAD, MethodOPTIONS, MethodCONNECT, MethodTRACE,
	}
}
