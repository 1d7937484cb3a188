// Package ldap implements LDAP protocol message parsing and encoding
// as specified in RFC 4511.
package ldap

import (
	"fmt"
)

// LDAP protocol operation tags (APPLICATION class)
// Per RFC 4511 Section 4.2
const (
	ApplicationBindRequest           = 0  // [APPLICATION 0]
	ApplicationBindResponse          = 1  // [APPLICATION 1]
	ApplicationUnbindRequest         = 2  // [APPLICATION 2]
	ApplicationSearchRequest         = 3  // [APPLICATION 3]
	ApplicationSearchResultEntry     = 4  // [APPLICATION 4]
	ApplicationSearchResultDone      = 5  // [APPLICATION 5]
	ApplicationModifyRequest         = 6  // [APPLICATION 6]
	ApplicationModifyResponse        = 7  // [APPLICATION 7]
	ApplicationAddRequest            = 8  // [APPLICATION 8]
	ApplicationAddResponse           = 9  // [APPLICATION 9]
	ApplicationDelRequest            = 10 // [APPLICATION 10]
	ApplicationDelResponse           = 11 // [APPLICATION 11]
	ApplicationModifyDNRequest       = 12 // [APPLICATION 12]
	ApplicationModifyDNResponse      = 13 // [APPLICATION 13]
	ApplicationCompareRequest        = 14 // [APPLICATION 14]
	ApplicationCompareResponse       = 15 // [APPLICATION 15]
	ApplicationAbandonRequest        = 16 // [APPLICATION 16]
	ApplicationSearchResultReference = 19 // [APPLICATION 19]
	ApplicationExtendedRequest       = 23 // [APPLICATION 23]
	ApplicationExtendedResponse      = 24 // [APPLICATION 24]
	ApplicationIntermediateResponse  = 25 // [APPLICATION 25]
)

// OperationType is the APPLICATION tag number of a protocolOp.
type OperationType uint32

var operationNames = map[OperationType]string{
	ApplicationBindRequest:           "BindRequest",
	ApplicationBindResponse:          "BindResponse",
	ApplicationUnbindRequest:         "UnbindRequest",
	ApplicationSearchRequest:         "SearchRequest",
	ApplicationSearchResultEntry:     "SearchResultEntry",
	ApplicationSearchResultDone:      "SearchResultDone",
	ApplicationModifyRequest:         "ModifyRequest",
	ApplicationModifyResponse:        "ModifyResponse",
	ApplicationAddRequest:            "AddRequest",
	ApplicationAddResponse:           "AddResponse",
	ApplicationDelRequest:            "DelRequest",
	ApplicationDelResponse:           "DelResponse",
	ApplicationModifyDNRequest:       "ModifyDNRequest",
	ApplicationModifyDNResponse:      "ModifyDNResponse",
	ApplicationCompareRequest:        "CompareRequest",
	ApplicationCompareResponse:       "CompareResponse",
	ApplicationAbandonRequest:        "AbandonRequest",
	ApplicationSearchResultReference: "SearchResultReference",
	ApplicationExtendedRequest:       "ExtendedRequest",
	ApplicationExtendedResponse:      "ExtendedResponse",
	ApplicationIntermediateResponse:  "IntermediateResponse",
}

// String returns the string representation of the operation type
func (o OperationType) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint32(o))
}

// Context-specific tags used in the message envelope and bind operations
const (
	ContextTagControls        = 0 // [0] Controls OPTIONAL
	ContextTagReferral        = 3 // [3] Referral OPTIONAL
	ContextTagServerSASLCreds = 7 // [7] serverSaslCreds OPTIONAL
)

// ResultCode is an LDAP result code as defined in RFC 4511 Section 4.1.9.
type ResultCode int

// LDAP result codes
const (
	ResultSuccess                      ResultCode = 0
	ResultOperationsError              ResultCode = 1
	ResultProtocolError                ResultCode = 2
	ResultTimeLimitExceeded            ResultCode = 3
	ResultSizeLimitExceeded            ResultCode = 4
	ResultCompareFalse                 ResultCode = 5
	ResultCompareTrue                  ResultCode = 6
	ResultAuthMethodNotSupported       ResultCode = 7
	ResultStrongerAuthRequired         ResultCode = 8
	ResultReferral                     ResultCode = 10
	ResultAdminLimitExceeded           ResultCode = 11
	ResultUnavailableCriticalExtension ResultCode = 12
	ResultConfidentialityRequired      ResultCode = 13
	ResultSaslBindInProgress           ResultCode = 14
	ResultNoSuchAttribute              ResultCode = 16
	ResultUndefinedAttributeType       ResultCode = 17
	ResultInappropriateMatching        ResultCode = 18
	ResultConstraintViolation          ResultCode = 19
	ResultAttributeOrValueExists       ResultCode = 20
	ResultInvalidAttributeSyntax       ResultCode = 21
	ResultNoSuchObject                 ResultCode = 32
	ResultAliasProblem                 ResultCode = 33
	ResultInvalidDNSyntax              ResultCode = 34
	ResultAliasDereferencingProblem    ResultCode = 36
	ResultInappropriateAuthentication  ResultCode = 48
	ResultInvalidCredentials           ResultCode = 49
	ResultInsufficientAccessRights     ResultCode = 50
	ResultBusy                         ResultCode = 51
	ResultUnavailable                  ResultCode = 52
	ResultUnwillingToPerform           ResultCode = 53
	ResultLoopDetect                   ResultCode = 54
	ResultNamingViolation              ResultCode = 64
	ResultObjectClassViolation         ResultCode = 65
	ResultNotAllowedOnNonLeaf          ResultCode = 66
	ResultNotAllowedOnRDN              ResultCode = 67
	ResultEntryAlreadyExists           ResultCode = 68
	ResultObjectClassModsProhibited    ResultCode = 69
	ResultAffectsMultipleDSAs          ResultCode = 71
	ResultOther                        ResultCode = 80
)

var resultNames = map[ResultCode]string{
	ResultSuccess:                      "Success",
	ResultOperationsError:              "OperationsError",
	ResultProtocolError:                "ProtocolError",
	ResultTimeLimitExceeded:            "TimeLimitExceeded",
	ResultSizeLimitExceeded:            "SizeLimitExceeded",
	ResultCompareFalse:                 "CompareFalse",
	ResultCompareTrue:                  "CompareTrue",
	ResultAuthMethodNotSupported:       "AuthMethodNotSupported",
	ResultStrongerAuthRequired:         "StrongerAuthRequired",
	ResultReferral:                     "Referral",
	ResultAdminLimitExceeded:           "AdminLimitExceeded",
	ResultUnavailableCriticalExtension: "UnavailableCriticalExtension",
	ResultConfidentialityRequired:      "ConfidentialityRequired",
	ResultSaslBindInProgress:           "SaslBindInProgress",
	ResultNoSuchAttribute:              "NoSuchAttribute",
	ResultUndefinedAttributeType:       "UndefinedAttributeType",
	ResultInappropriateMatching:        "InappropriateMatching",
	ResultConstraintViolation:          "ConstraintViolation",
	ResultAttributeOrValueExists:       "AttributeOrValueExists",
	ResultInvalidAttributeSyntax:       "InvalidAttributeSyntax",
	ResultNoSuchObject:                 "NoSuchObject",
	ResultAliasProblem:                 "AliasProblem",
	ResultInvalidDNSyntax:              "InvalidDNSyntax",
	ResultAliasDereferencingProblem:    "AliasDereferencingProblem",
	ResultInappropriateAuthentication:  "InappropriateAuthentication",
	ResultInvalidCredentials:           "InvalidCredentials",
	ResultInsufficientAccessRights:     "InsufficientAccessRights",
	ResultBusy:                         "Busy",
	ResultUnavailable:                  "Unavailable",
	ResultUnwillingToPerform:           "UnwillingToPerform",
	ResultLoopDetect:                   "LoopDetect",
	ResultNamingViolation:              "NamingViolation",
	ResultObjectClassViolation:         "ObjectClassViolation",
	ResultNotAllowedOnNonLeaf:          "NotAllowedOnNonLeaf",
	ResultNotAllowedOnRDN:              "NotAllowedOnRDN",
	ResultEntryAlreadyExists:           "EntryAlreadyExists",
	ResultObjectClassModsProhibited:    "ObjectClassModsProhibited",
	ResultAffectsMultipleDSAs:          "AffectsMultipleDSAs",
	ResultOther:                        "Other",
}

// String returns the string representation of the result code
func (r ResultCode) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int(r))
}

// MaxMessageID is the maximum valid message ID per RFC 4511
// MessageID ::= INTEGER (0 .. maxInt)
// maxInt INTEGER ::= 2147483647 -- (2^^31 - 1)
const MaxMessageID = 2147483647

// MinMessageID is the minimum valid message ID
const MinMessageID = 0

// Control represents an LDAP control as defined in RFC 4511 Section 4.1.11
// Control ::= SEQUENCE {
//
//	controlType             LDAPOID,
//	criticality             BOOLEAN DEFAULT FALSE,
//	controlValue            OCTET STRING OPTIONAL
//
// }
type Control struct {
	OID         string
	Criticality bool
	Value       []byte
}

// Result carries the LDAPResult components shared by most responses.
type Result struct {
	Code              ResultCode
	MatchedDN         string
	DiagnosticMessage string
	Referral          []string
}
