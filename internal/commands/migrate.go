package commands

import (
	"fmt"
	"log"

	"gaon/backend/internal/pkg/repository/postgresql"

	"github.com/pkg/errors"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "Create enum types.",
		Query: `
        CREATE TYPE "member_role" AS ENUM ('STUDENT', 'ADMIN', 'PARENT');
        CREATE TYPE "attendance_status" AS ENUM ('NONE', 'PRESENT', 'OUTING', 'LEAVE', 'ABSENT');
        CREATE TYPE "penalty_type" AS ENUM ('LATE_ABSENT', 'ABSENT');
        CREATE TYPE "template_status" AS ENUM ('DRAFT', 'PENDING', 'APPROVED', 'REJECTED');
        CREATE TYPE "block_type" AS ENUM ('STUDY', 'ACADEMY', 'PERSONAL', 'OTHER');
        CREATE TYPE "schedule_status" AS ENUM ('NORMAL', 'CHANGED', 'CANCELED', 'ABSENT', 'LATE');`,
	},
	{
		Index:       2,
		Description: "Create table: members.",
		Query: `
        CREATE TABLE IF NOT EXISTS members (
            id serial primary key,
            login text not null,
            password text not null,
            role member_role,
            full_name text,
            phone text,
            created_at timestamp default now(),
            created_by int references members(id),
            updated_at timestamp,
            updated_by int references members(id),
            deleted_at timestamp,
            deleted_by int references members(id)
        );`,
	},
	{
		Index:       3,
		Description: "Create admin with login: Admin01, password: 1",
		Query: `
        INSERT INTO members(login, role, password, full_name)
        SELECT 'Admin01', 'ADMIN', '$2a$10$NKtnMwDPFSQLG6uOi4Zqheru5Ygbj9TWFHjpl478rRSaO5cJ9QuH2', 'Administrator'
        WHERE NOT EXISTS (SELECT login FROM members WHERE login = 'Admin01');
        `,
	},
	{
		Index:       4,
		Description: "Create table: attendance.",
		Query: `
        CREATE TABLE IF NOT EXISTS attendance (
            id serial primary key,
            student_id int not null references members(id),
            date date not null,
            day_of_week varchar(9),
            attend_time time,
            leave_time time,
            status attendance_status not null default 'NONE',
            excuse_late boolean not null default false,
            excuse_absent boolean not null default false,
            memo text,
            created_at timestamp default now(),
            created_by int references members(id),
            updated_at timestamp,
            updated_by int references members(id),
            deleted_at timestamp,
            deleted_by int references members(id),
            UNIQUE (student_id, date)
        );`,
	},
	{
		Index:       5,
		Description: "Create table: outing_log.",
		Query: `
        CREATE TABLE IF NOT EXISTS outing_log (
            id serial primary key,
            attendance_id int not null references attendance(id),
            start_time time not null,
            end_time time
        );`,
	},
	{
		Index:       6,
		Description: "Create table: attendance_penalty.",
		Query: `
        CREATE TABLE IF NOT EXISTS attendance_penalty (
            id serial primary key,
            attendance_id int not null references attendance(id),
            type penalty_type not null,
            recorded_at timestamp not null default now()
        );`,
	},
	{
		Index:       7,
		Description: "Create table: schedule_template.",
		Query: `
        CREATE TABLE IF NOT EXISTS schedule_template (
            id serial primary key,
            member_id int not null references members(id),
            name varchar(100),
            description varchar(255),
            status template_status not null default 'DRAFT',
            approved_by int references members(id),
            approved_at timestamp,
            current_approved_version_id int,
            created_at timestamp default now(),
            created_by int references members(id),
            updated_at timestamp,
            updated_by int references members(id),
            deleted_at timestamp,
            deleted_by int references members(id),
            UNIQUE (member_id)
        );`,
	},
	{
		Index:       8,
		Description: "Create table: schedule_template_version.",
		Query: `
        CREATE TABLE IF NOT EXISTS schedule_template_version (
            id serial primary key,
            template_id int not null references schedule_template(id),
            version_no int not null,
            status template_status not null default 'DRAFT',
            effective_from date,
            reject_reason varchar(255),
            reviewed_by int references members(id),
            created_at timestamp default now(),
            created_by int references members(id),
            updated_at timestamp,
            updated_by int references members(id),
            deleted_at timestamp,
            deleted_by int references members(id),
            UNIQUE (template_id, version_no)
        );`,
	},
	{
		Index:       9,
		Description: "At most one PENDING version per template.",
		Query: `
        CREATE UNIQUE INDEX IF NOT EXISTS uq_stv_one_pending
            ON schedule_template_version (template_id)
            WHERE status = 'PENDING' AND deleted_at IS NULL;`,
	},
	{
		Index:       10,
		Description: "Create table: schedule_template_item.",
		Query: `
        CREATE TABLE IF NOT EXISTS schedule_template_item (
            id serial primary key,
            version_id int not null references schedule_template_version(id),
            day_of_week varchar(9) not null,
            type block_type not null default 'OTHER',
            start_time time not null,
            end_time time not null,
            subject varchar(50),
            description varchar(100),
            created_at timestamp default now(),
            created_by int references members(id),
            updated_at timestamp,
            updated_by int references members(id),
            deleted_at timestamp,
            deleted_by int references members(id),
            CHECK (end_time > start_time),
            CHECK (day_of_week IN ('MONDAY','TUESDAY','WEDNESDAY','THURSDAY','FRIDAY','SATURDAY','SUNDAY'))
        );`,
	},
	{
		Index:       11,
		Description: "Create table: schedule.",
		Query: `
        CREATE TABLE IF NOT EXISTS schedule (
            id serial primary key,
            student_id int not null references members(id),
            date date not null,
            start_time time not null,
            end_time time not null,
            subject varchar(50),
            memo varchar(255),
            status schedule_status not null default 'NORMAL',
            source_version_id int references schedule_template_version(id),
            source_item_id int references schedule_template_item(id),
            created_at timestamp default now(),
            created_by int references members(id),
            updated_at timestamp,
            updated_by int references members(id),
            deleted_at timestamp,
            deleted_by int references members(id)
        );
        CREATE INDEX IF NOT EXISTS idx_schedule_student_date ON schedule (student_id, date);`,
	},
}

// Migrate creates the scheme in the database.
func Migrate(db *postgresql.Database) {
	for _, s := range scheme {
		if _, err := db.Query(s.Query); err != nil {
			log.Fatalln("migrate error", err)
		}
	}
}

func MigrateUP(db *postgresql.Database) {
	var (
		version int
		dirty   bool
		er      *string
	)
	err := db.QueryRow("SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	if err != nil {
		if err.Error() == `ERROR: relation "schema_migrations" does not exist (SQLSTATE=42P01)` {
			if _, err = db.Exec(`
				CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text);
				DELETE FROM schema_migrations;
				INSERT INTO schema_migrations (version, dirty) values (0, false);
			`); err != nil {
				log.Fatalln("migrate schema_migrations create error", err)
			}
			version = 0
			dirty = false
		} else {
			log.Fatalln("migrate schema_migrations scan: ", err)
		}
	}

	if dirty {
		for _, v := range scheme {
			if v.Index == version {
				if _, err = db.Exec(v.Query); err != nil {
					if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s'`, err.Error())); err != nil {
						log.Fatalln("migrate error", err)
					}
					log.Fatalln(fmt.Sprintf("migrate error version: %d", version), err)
				}
				if _, err = db.Exec(`UPDATE schema_migrations SET dirty = false, error = null`); err != nil {
					log.Fatalln("migrate error", err)
				}
			}
		}
	}

	for _, s := range scheme {
		if s.Index > version {
			if _, err = db.Exec(s.Query); err != nil {
				if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s', version = %d, dirty = true`, err.Error(), s.Index)); err != nil {
					log.Fatalln("migrate error", err)
				}
				log.Fatalln(fmt.Sprintf("migrate error version: %d", s.Index), err)
			}
			if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET version = %d`, s.Index)); err != nil {
				log.Fatalln("migrate error", err)
			}
		}
	}
}
