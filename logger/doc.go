/*

Package logger exposes a simple, leveled logger through the Logger interface.

The default implementation writes colorized messages to os.Stdout.
When SENTRY_DSN is set in the environment,
error-and-above logs additionally ship to Sentry.

*/
package logger
