// Package tenant define el alcance de aislamiento por organización que viaja explícitamente
// en cada caso de uso y en cada llamada al almacenamiento.
package tenant

// Scope identidad de organización resuelta para una petición. Es un valor inmutable:
// se construye una vez en el resolver y se pasa por copia.
type Scope struct {
	orgID          string
	orgName        string
	credentialID   string
	credentialName string
}

// New construye un Scope para la organización y la credencial indicadas.
func New(orgID, orgName, credentialID, credentialName string) Scope {
	return Scope{orgID: orgID, orgName: orgName, credentialID: credentialID, credentialName: credentialName}
}

// System alcance sin organización para operaciones administrativas (lookup de credenciales, alta de orgs).
// No aplica hint de aislamiento en la base de datos.
func System() Scope { return Scope{} }

// OrgID devuelve la organización del alcance ("" para System).
func (s Scope) OrgID() string { return s.orgID }

// OrgName nombre de la organización en el momento de resolver la credencial.
func (s Scope) OrgName() string { return s.orgName }

// CredentialID ID de la API key que originó la petición.
func (s Scope) CredentialID() string { return s.credentialID }

// IsSystem indica si es el alcance administrativo.
func (s Scope) IsSystem() bool { return s.orgID == "" }

// Actor identificador para el audit log.
func (s Scope) Actor() string {
	switch {
	case s.credentialName != "":
		return "api_key:" + s.credentialName
	case s.credentialID != "":
		return "api_key:" + s.credentialID
	case s.orgID == "":
		return "system"
	default:
		return "org:" + s.orgID
	}
}

// CanSee aplica la regla de propiedad: un registro sin organización (legacy/público) es visible para todos;
// si tiene organización debe coincidir con la del alcance.
func (s Scope) CanSee(recordOrgID string) bool {
	return recordOrgID == "" || recordOrgID == s.orgID
}
