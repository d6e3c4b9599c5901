/*
Command manifest builds node trees from YAML blueprints.

    manifest render menu.yaml              # HTML on stdout
    manifest render --format tree menu.yaml
    manifest serve --addr :8080 menu.yaml  # HTML over HTTP

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

func main() {
	Execute()
}
