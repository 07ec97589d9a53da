// Package connector provides storage backends for key material.
package connector
