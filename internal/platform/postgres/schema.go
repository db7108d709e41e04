package postgres

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the database schema. The
// partial unique index on policies is the race backstop for the service's
// check-then-act uniqueness checks: at most one active APPROVED version per
// (tenant, name, type).
const Schema = `
CREATE TABLE IF NOT EXISTS tenants (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS policy_templates (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    version TEXT NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS policy_templates_identity_idx
    ON policy_templates (name, type, version)
    WHERE is_active;

CREATE TABLE IF NOT EXISTS policies (
    id UUID PRIMARY KEY,
    tenant_id UUID NOT NULL,
    template_id UUID,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    version TEXT NOT NULL,
    content TEXT NOT NULL DEFAULT '',
    configuration JSONB NOT NULL DEFAULT '{}',
    status TEXT NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    approved_by UUID,
    approved_at TIMESTAMPTZ,
    effective_from TIMESTAMPTZ,
    effective_to TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS policies_approved_identity_idx
    ON policies (tenant_id, name, type)
    WHERE is_active AND status = 'APPROVED';

CREATE INDEX IF NOT EXISTS policies_group_idx
    ON policies (tenant_id, name, type);

CREATE TABLE IF NOT EXISTS employees (
    id UUID PRIMARY KEY,
    tenant_id UUID NOT NULL,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    role TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS employees_tenant_email_idx
    ON employees (tenant_id, lower(email));

CREATE TABLE IF NOT EXISTS acknowledgments (
    id UUID PRIMARY KEY,
    employee_id UUID NOT NULL,
    policy_id UUID NOT NULL,
    type TEXT NOT NULL,
    status TEXT NOT NULL,
    due_date TIMESTAMPTZ NOT NULL,
    completed_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS acknowledgments_employee_idx
    ON acknowledgments (employee_id);

CREATE INDEX IF NOT EXISTS acknowledgments_sweep_idx
    ON acknowledgments (status, due_date);
`
