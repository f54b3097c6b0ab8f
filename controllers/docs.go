//Package classification GrantLink
//
// API Usage
//
// Most actions that can be performed via API can be performed via the dashboard. GrantLink can also be run headless, and all functions can be achieved via API calls. If your use case requires scripting the agency workflows or you need to do some troubleshooting/advanced configuration, using the API directly may help.
//
//
// Authentication
//
// API calls must be authenticated via a header of the format -H "Authorization: Bearer <YOUR_SECRET_KEY>" There are two methods to obtain YOUR_SECRET_KEY: 1. Using the masterkey. By default this value is unset and should be configured on your instance and kept secure. This value can be set via env var at startup or in a config file (config/environments/< env >.yaml). 2. Using a JWT received for a user. This can be retrieved by calling the /api/users/adm/authenticate endpoint, as documented below. Onboarding portal routes authenticate with the request token in the URL instead.
//
//     Schemes: https
//     BasePath: /
//     Version: 0.1.0
//     Host: grantlink.io
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - oauth
//
// swagger:meta
package controller
