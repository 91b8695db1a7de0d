// @title           BlogApp API
// @version         1.0
// @description     Social blogging platform: posts, comments, likes, follows, direct messages and notifications.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "blogapp_backend/internal/app"

func main() {
	app.Run()
}
