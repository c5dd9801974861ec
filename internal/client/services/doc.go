// Package services contains the application services of the surveillance
// client. They sit between the CLI and the session client and map each
// operation onto an entry of the endpoint table.
package services
